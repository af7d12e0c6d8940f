package user

import (
	"os"
	"os/user"
)

// EnvActor overrides the name recorded on events, e.g. for a shared server
const EnvActor = "LANES_ACTOR"

// Actor returns the name recorded as the author of board changes.
// It tries, in order: $LANES_ACTOR, the OS account, $USER, and finally "unknown".
func Actor() string {
	if name := os.Getenv(EnvActor); name != "" {
		return name
	}
	return currentUsername()
}

func currentUsername() string {
	currentUser, err := user.Current()
	if err != nil || currentUser.Username == "" {
		if username := os.Getenv("USER"); username != "" {
			return username
		}
		return "unknown"
	}
	return currentUser.Username
}
