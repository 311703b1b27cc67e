package service

import "github.com/rs/zerolog/log"

// Notifier delivers a message to a student out of band. Transactional email
// lives in a separate service; this is its seam.
type Notifier interface {
	Notify(studentID uint, message string) error
}

// consoleNotifier logs instead of sending. Default wiring for development.
type consoleNotifier struct{}

func NewConsoleNotifier() Notifier {
	return consoleNotifier{}
}

func (consoleNotifier) Notify(studentID uint, message string) error {
	log.Info().Uint("studentID", studentID).Str("message", message).Msg("notify")
	return nil
}
