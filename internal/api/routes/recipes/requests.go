package recipes

import (
	"encoding/json"
	"net/http"

	mJson "github.com/matt-dz/tastebook/internal/json"
)

type RateRecipeRequest struct {
	Rating int `json:"rating"`
}

type AddCommentRequest struct {
	Comment string `json:"comment"`
}

func decodeRequest(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	return mJson.DecodeJSON(dst, json.NewDecoder(r.Body))
}
