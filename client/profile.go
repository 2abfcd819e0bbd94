package client

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

// Profile is the locally persisted player identity: display name, the last
// reconnect token the server handed out, and the last server joined.
type Profile struct {
	Name           string `json:"name"`
	ReconnectToken string `json:"reconnectToken"`
	LastServer     string `json:"lastServer"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for profile storage.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "ironsight",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadProfile loads the saved profile from disk. Returns nil with no error
// when nothing has been saved yet.
func LoadProfile() (*Profile, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("profile")
	if err != nil {
		log.Printf("Warning: Could not load profile: %v", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Warning: Could not parse saved profile: %v", err)
		return nil, err
	}
	return &p, nil
}

// SaveProfile saves the profile to disk.
func SaveProfile(p *Profile) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Warning: Could not serialize profile: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("profile", data); err != nil {
		log.Printf("Warning: Could not save profile: %v", err)
		return err
	}
	return nil
}
