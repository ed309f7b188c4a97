package panels

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"medview/internal/api"
)

// UploadPanel sends CT or ultrasound files to the external backend.
type UploadPanel struct {
	client *api.Client
	window fyne.Window

	caseEntry     *widget.Entry
	bodyPartEntry *widget.Entry
	videoCheck    *widget.Check
	modality      *widget.Select
	status        *widget.Label
	files         []string
	fileList      *widget.Label
	container     *fyne.Container
}

// NewUploadPanel creates the upload panel.
func NewUploadPanel(client *api.Client) *UploadPanel {
	up := &UploadPanel{
		client:   client,
		status:   widget.NewLabel(""),
		fileList: widget.NewLabel("No files selected"),
	}

	up.caseEntry = widget.NewEntry()
	up.caseEntry.SetPlaceHolder("Case ID")
	up.bodyPartEntry = widget.NewEntry()
	up.bodyPartEntry.SetPlaceHolder("Body part (optional)")
	up.videoCheck = widget.NewCheck("Cine clip", nil)
	up.modality = widget.NewSelect([]string{"CT", "Ultrasound"}, nil)
	up.modality.Selected = "CT"

	addBtn := widget.NewButton("Add file...", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			rc.Close()
			up.files = append(up.files, rc.URI().Path())
			up.fileList.SetText(fmt.Sprintf("%d file(s) selected", len(up.files)))
		}, up.window)
		fd.Show()
	})

	uploadBtn := widget.NewButton("Upload", up.upload)

	up.container = container.NewVBox(
		widget.NewLabelWithStyle("Upload", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		up.modality,
		up.caseEntry,
		up.bodyPartEntry,
		up.videoCheck,
		addBtn,
		up.fileList,
		uploadBtn,
		up.status,
	)
	return up
}

// SetWindow sets the parent window for dialogs.
func (up *UploadPanel) SetWindow(w fyne.Window) {
	up.window = w
}

func (up *UploadPanel) upload() {
	if up.caseEntry.Text == "" || len(up.files) == 0 {
		up.status.SetText("Case ID and at least one file are required")
		return
	}

	var uploads []api.UploadFile
	var handles []*os.File
	for _, path := range up.files {
		f, err := os.Open(path)
		if err != nil {
			up.status.SetText(fmt.Sprintf("Cannot open %s", filepath.Base(path)))
			for _, h := range handles {
				h.Close()
			}
			return
		}
		handles = append(handles, f)
		uploads = append(uploads, api.UploadFile{Name: filepath.Base(path), Reader: f})
	}

	up.status.SetText("Uploading...")

	go func() {
		defer func() {
			for _, h := range handles {
				h.Close()
			}
		}()

		var result *api.UploadResult
		var err error
		if up.modality.Selected == "Ultrasound" {
			result, err = up.client.UploadUltrasound(context.Background(),
				up.caseEntry.Text, up.bodyPartEntry.Text, up.videoCheck.Checked, uploads)
		} else {
			result, err = up.client.UploadCT(context.Background(),
				up.caseEntry.Text, up.bodyPartEntry.Text, uploads)
		}

		switch {
		case errors.Is(err, api.ErrUnauthorized):
			up.status.SetText("Session expired, please sign in again")
		case err != nil:
			up.status.SetText(fmt.Sprintf("Upload failed: %v", err))
		default:
			up.files = nil
			up.fileList.SetText("No files selected")
			up.status.SetText(fmt.Sprintf("Created study %s (%d images)",
				result.StudyID, result.NumImages))
		}
	}()
}

// Container returns the panel container.
func (up *UploadPanel) Container() fyne.CanvasObject {
	return up.container
}
