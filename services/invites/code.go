package invites

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Invite codes are an opaque base64 wrapping of "eventID|inviteID". The
// inviteID is a uuidv7, so codes are unguessable enough for mail links.

func encodeCode(eventID, inviteID string) string {
	return base64.URLEncoding.EncodeToString([]byte(fmt.Sprintf("%s|%s", eventID, inviteID)))
}

func decodeCode(code string) (eventID, inviteID string, err error) {
	decoded, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return parts[0], parts[1], nil
}
