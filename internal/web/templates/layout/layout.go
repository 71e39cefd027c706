// Package layout holds the page shell shared by every HTML page.
package layout

//go:generate templ generate

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // info, error
	Message string
}

// PageData is common to all pages
type PageData struct {
	Title string
	Flash *FlashMessage
}
