package model

import "time"

// Folder identifies a named mailbox partition.
type Folder string

const (
	FolderInbox   Folder = "inbox"
	FolderArchive Folder = "archive"
	FolderSent    Folder = "sent"
	FolderJunk    Folder = "junk"
	FolderDrafts  Folder = "drafts"
)

// Folders lists the partitions shown in the folder switcher, in display order.
var Folders = []Folder{
	FolderInbox,
	FolderArchive,
	FolderSent,
	FolderJunk,
	FolderDrafts,
}

// DisplayName returns the human-readable folder label.
func (f Folder) DisplayName() string {
	switch f {
	case FolderInbox:
		return "Inbox"
	case FolderArchive:
		return "Archive"
	case FolderSent:
		return "Sent"
	case FolderJunk:
		return "Junk"
	case FolderDrafts:
		return "Drafts"
	default:
		return string(f)
	}
}

// EmailAddress is a name/address pair as returned by the mailbox API.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// EmailAddressWrapper matches the API's nested emailAddress object.
type EmailAddressWrapper struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Body holds the renderable message content.
type Body struct {
	// ContentType is "html" or "text".
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Email is a single message as served by the mailbox API. Field names follow
// the wire format; emails are immutable on the client except through
// confirmed mutation results.
type Email struct {
	// ID is the stable, server-assigned message identifier.
	ID string `json:"id"`

	ReceivedDateTime time.Time `json:"receivedDateTime"`

	Subject     string `json:"subject"`
	BodyPreview string `json:"bodyPreview"`
	IsRead      bool   `json:"isRead"`

	Body Body                `json:"body"`
	From EmailAddressWrapper `json:"from"`
}

// FromName returns the sender's display name, falling back to the address.
func (e Email) FromName() string {
	if name := e.From.EmailAddress.Name; name != "" {
		return name
	}
	return e.From.EmailAddress.Address
}

// EmailPatch holds the fields a mutation confirmation may update. Nil fields
// are left untouched when the patch is merged.
type EmailPatch struct {
	IsRead *bool `json:"isRead,omitempty"`
}

// Apply merges the patch into a copy of the email.
func (p EmailPatch) Apply(e Email) Email {
	if p.IsRead != nil {
		e.IsRead = *p.IsRead
	}
	return e
}

// Profile is the account descriptor returned by GET /me.
type Profile struct {
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// Address returns the best-known mailbox address for the profile.
func (p Profile) Address() string {
	if p.Mail != "" {
		return p.Mail
	}
	return p.UserPrincipalName
}
