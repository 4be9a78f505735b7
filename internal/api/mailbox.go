package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/webmail/internal/model"
)

// Profile fetches the account descriptor for the logged-in user.
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FolderEmails lists the emails in a folder, in server order.
func (c *Client) FolderEmails(
	ctx context.Context,
	folder model.Folder,
) ([]model.Email, error) {
	var emails []model.Email
	path := fmt.Sprintf("/%s/emails", url.PathEscape(string(folder)))
	if err := c.get(ctx, path, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// Search returns the emails matching the query, in server order.
func (c *Client) Search(
	ctx context.Context,
	query string,
) ([]model.Email, error) {
	var emails []model.Email
	path := "/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// Archive moves the email out of its current folder into the archive.
func (c *Client) Archive(ctx context.Context, id string) error {
	path := fmt.Sprintf("/emails/%s/archive", url.PathEscape(id))
	return c.put(ctx, path, nil, nil)
}

// MarkSpam moves the email to the junk folder.
func (c *Client) MarkSpam(ctx context.Context, id string) error {
	path := fmt.Sprintf("/emails/%s/spam", url.PathEscape(id))
	return c.put(ctx, path, nil, nil)
}

// ToggleUnread flips the email's read flag and returns the fields the
// server updated.
func (c *Client) ToggleUnread(
	ctx context.Context,
	id string,
) (model.EmailPatch, error) {
	var patch model.EmailPatch
	path := fmt.Sprintf("/emails/%s/unread", url.PathEscape(id))
	if err := c.put(ctx, path, nil, &patch); err != nil {
		return model.EmailPatch{}, err
	}
	return patch, nil
}
