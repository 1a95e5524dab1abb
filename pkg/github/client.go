package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

// ClientOptions configure the GitHub API client.
type ClientOptions struct {
	Token string
	// BaseURL points at a GitHub Enterprise or test API endpoint. Empty means api.github.com.
	BaseURL string
	// HTTPClient is the transport used when no token is set.
	HTTPClient *http.Client
}

// NewClient returns a GitHub API client. A token, when set, is sent as a bearer token.
func NewClient(ctx context.Context, opts ClientOptions) (*github.Client, error) {
	httpClient := opts.HTTPClient
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if opts.BaseURL == "" {
		return client, nil
	}

	base := opts.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	client.BaseURL = u
	return client, nil
}
