package state

import (
	"net/url"

	"github.com/gorilla/schema"
)

// Param is the query parameter carrying the encoded view state.
const Param = "s"

type urlQuery struct {
	State string `schema:"s"`
}

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// FromURL returns the state token of u, empty when there is none.
func FromURL(u *url.URL) (string, error) {
	q := urlQuery{}
	if err := queryDecoder.Decode(&q, u.Query()); err != nil {
		return "", err
	}
	return q.State, nil
}

// Apply returns a copy of u with the state token replaced, other parameters
// kept as they are.
func Apply(u *url.URL, token string) *url.URL {
	ret := *u
	query := u.Query()
	query.Set(Param, token)
	ret.RawQuery = query.Encode()
	return &ret
}
