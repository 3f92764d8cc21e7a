// Package notify sends desktop notifications through zenity.
package notify

import (
	"github.com/ncruces/zenity"
)

// Desktop posts notifications with a fixed title.
type Desktop struct {
	Title string
}

func (d Desktop) Notify(msg string) error {
	return zenity.Notify(msg, zenity.Title(d.Title), zenity.InfoIcon)
}

// Disabled drops every notification.
type Disabled struct{}

func (Disabled) Notify(string) error { return nil }
