package service

import (
	"fmt"

	"scopri.app/eventilocali/internal/entity"
)

// ModerationNotice maps a moderation outcome onto the user-facing title and
// message. Unknown types yield ok=false and produce no notification.
func ModerationNotice(notifType, eventName string) (title, message string, ok bool) {
	switch notifType {
	case entity.NotificationEventApproved:
		return "Evento Approvato! 🎉",
			fmt.Sprintf("Il tuo evento \"%s\" è stato approvato ed è ora visibile a tutti gli utenti. Hai guadagnato 1 punto! 🏆", eventName),
			true
	case entity.NotificationEventRejected:
		return "Evento Rifiutato",
			fmt.Sprintf("Il tuo evento \"%s\" è stato rifiutato. Controlla le informazioni e riprova.", eventName),
			true
	case entity.NotificationEventModified:
		return "Evento Modificato",
			fmt.Sprintf("Il tuo evento \"%s\" è stato modificato da un revisore.", eventName),
			true
	default:
		return "", "", false
	}
}
