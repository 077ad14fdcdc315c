package api

import (
	"net/http"

	"github.com/dekarrin/slrgen/internal/version"
	"github.com/dekarrin/slrgen/server/result"
)

// InfoModel is the response body of GET /api/v1/info.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Slrgen string `json:"slrgen"`
	} `json:"version"`
}

// HTTPGetInfo returns the handler for GET /api/v1/info.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Slrgen = version.Current

	return result.OK(resp, "got API info")
}
