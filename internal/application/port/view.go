package port

import "github.com/Aurelio-One/p9/internal/domain/bill"

// Navigator moves the user to another view. Injected so the services never
// touch a process-wide navigation hook.
type Navigator interface {
	NavigateTo(route bill.Route)
}

// Alerter raises a user-facing warning message.
type Alerter interface {
	Alert(message string)
}

// ImagePreviewer shows a receipt image to the user, e.g. in a modal.
type ImagePreviewer interface {
	ShowImagePreview(url string)
}
