package api

import (
	"context"
	"net/url"
)

// Login exchanges credentials for a bearer token. The token is opaque to the
// console; validation happens server-side.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	var token Token
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := c.request(ctx).
		SetFormDataFromValues(form).
		SetResult(&token)
	resp, err := req.Post("/user/login")
	if err := c.finish(resp, err); err != nil {
		return Token{}, err
	}
	return token, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/user/me", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
