package config

import "os"

// FirebaseServiceAccountKeyPath points at the service account JSON used for
// FCM pushes.
var FirebaseServiceAccountKeyPath = firebaseKeyPath()

func firebaseKeyPath() string {
	if p := os.Getenv("FIREBASE_CREDENTIALS_FILE"); p != "" {
		return p
	}
	return "firebase-service-account.json"
}
