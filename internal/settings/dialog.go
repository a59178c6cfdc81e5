package settings

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// Dialog is the editor widget's settings dialog description: a tabbed panel
// with one tab per catalog category and one control per visible definition,
// plus the current values to populate the controls with.
type Dialog struct {
	Title       string            `json:"title"`
	Body        DialogBody        `json:"body"`
	Buttons     []DialogButton    `json:"buttons"`
	InitialData map[string]string `json:"initialData"`
}

// DialogBody is the tab panel holding the dialog's controls.
type DialogBody struct {
	Type string      `json:"type"`
	Tabs []DialogTab `json:"tabs"`
}

// DialogTab is one tab of the dialog, corresponding to a catalog category.
type DialogTab struct {
	Name  string       `json:"name"`
	Title string       `json:"title"`
	Items []DialogItem `json:"items"`
}

// DialogItem is a single dialog control.
type DialogItem struct {
	Type  string         `json:"type"`
	Name  string         `json:"name,omitempty"`
	Label string         `json:"label,omitempty"`
	HTML  string         `json:"html,omitempty"`
	Items []DialogOption `json:"items,omitempty"`
}

// DialogOption is one choice of a select box control.
type DialogOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// DialogButton is a dialog footer button.
type DialogButton struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Primary bool   `json:"primary,omitempty"`
}

// controlTypes maps setting types to dialog control types.
var controlTypes = map[lurchtypes.SettingType]string{
	lurchtypes.SettingBool:        "checkbox",
	lurchtypes.SettingText:        "input",
	lurchtypes.SettingInt:         "input",
	lurchtypes.SettingLongText:    "textarea",
	lurchtypes.SettingCategorical: "selectbox",
	lurchtypes.SettingColor:       "colorinput",
}

// BuildDialog constructs the settings dialog for the given catalog,
// populated with the current effective values. Hidden definitions get no
// control; note definitions become read-only HTML panels.
func BuildDialog(schema *lurchtypes.SettingsSchema, current *Settings) *Dialog {
	dialog := &Dialog{
		Title: "Preferences",
		Body:  DialogBody{Type: "tabpanel"},
		Buttons: []DialogButton{
			{Type: "cancel", Text: "Cancel"},
			{Type: "submit", Text: "Save", Primary: true},
		},
		InitialData: make(map[string]string),
	}

	for _, category := range schema.Categories {
		tab := DialogTab{
			Name:  tabName(category.Name),
			Title: category.Name,
		}

		for _, def := range category.Settings {
			if def.Hidden {
				continue
			}
			if def.Type == lurchtypes.SettingNote {
				tab.Items = append(tab.Items, DialogItem{
					Type: "htmlpanel",
					HTML: "<p>" + html.EscapeString(def.Description) + "</p>",
				})
				continue
			}

			item := DialogItem{
				Type:  controlTypes[def.Type],
				Name:  def.Key,
				Label: def.Label,
			}
			if def.Type == lurchtypes.SettingCategorical {
				for _, option := range def.Options {
					item.Items = append(item.Items, DialogOption{Text: option, Value: option})
				}
			}
			tab.Items = append(tab.Items, item)
			dialog.InitialData[def.Key] = current.Get(def.Key)
		}

		if len(tab.Items) > 0 {
			dialog.Body.Tabs = append(dialog.Body.Tabs, tab)
		}
	}

	return dialog
}

// JSON renders the dialog as indented JSON.
func (d *Dialog) JSON() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal dialog: %w", err)
	}
	return string(data), nil
}

// tabName derives a stable tab identifier from a category title.
func tabName(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
