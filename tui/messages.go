package tui

import (
	"github.com/pb33f/quiver/motor"
)

// messageDialog renders a queued info or error message as a modal popup.
// Any key dismisses it.
type messageDialog struct {
	message motor.Message
}

func newMessageDialog(msg motor.Message) *messageDialog {
	return &messageDialog{message: msg}
}

func (d *messageDialog) render(termWidth int) string {
	title := " info "
	color := RGBGreen
	if d.message.Kind == motor.MessageError {
		title = " error "
		color = RGBRed
	}

	content := d.message.Text + "\n\n" +
		HelpStyle.Render("Any: Dismiss")
	return popupBox(title, content, color, termWidth, messagePopupWidthPct)
}
