package utils

import (
	"log"

	"lms/config"
	"lms/models"

	"github.com/go-resty/resty/v2"
)

// SyncUserToDirectory pushes a created or updated user to the external HR
// directory. Fire and forget, failures are logged and never block the
// request that triggered the sync.
func SyncUserToDirectory(user models.User, action string) {
	apiUrl := config.AppConfig.DirectoryApiUrl
	if apiUrl == "" {
		return
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.DirectoryApiKey).
		SetBody(map[string]interface{}{
			"external_id": user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"action":      action,
		}).
		Post(apiUrl + "/employees/sync")

	if err != nil {
		log.Printf("Error syncing user %d to directory: %v", user.ID, err)
		return
	}

	if resp.StatusCode() >= 300 {
		log.Printf("Directory sync failed for user %d: %s", user.ID, resp.String())
		return
	}

	log.Printf("User %d synced to directory (%s)", user.ID, action)
}
