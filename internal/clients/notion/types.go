package notion

import "time"

const (
	PropertyTypeTitle       = "title"
	PropertyTypeRichText    = "rich_text"
	PropertyTypeMultiSelect = "multi_select"
	PropertyTypeSelect      = "select"
	PropertyTypeStatus      = "status"
	PropertyTypeDate        = "date"
)

type Page struct {
	Object      string                   `json:"object,omitempty"`
	ID          string                   `json:"id"`
	CreatedTime time.Time                `json:"created_time"`
	URL         string                   `json:"url,omitempty"`
	Properties  map[string]PropertyValue `json:"properties"`
}

type Database struct {
	Object string     `json:"object,omitempty"`
	ID     string     `json:"id"`
	Title  []RichText `json:"title,omitempty"`
	URL    string     `json:"url,omitempty"`
}

// PropertyValue holds exactly one of its value fields depending on Type.
type PropertyValue struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
}

type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
	Href      string       `json:"href,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type Parent struct {
	DatabaseID string `json:"database_id"`
}

type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

type updatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties"`
}

type queryDatabaseResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TitleValue(content string) PropertyValue {
	return PropertyValue{Title: []RichText{{Text: &TextContent{Content: content}}}}
}

func MultiSelectValue(names []string) PropertyValue {
	options := make([]SelectOption, 0, len(names))
	for _, name := range names {
		options = append(options, SelectOption{Name: name})
	}
	return PropertyValue{MultiSelect: options}
}

func DateOf(start string) PropertyValue {
	return PropertyValue{Date: &DateValue{Start: start}}
}

// LinkValue renders label as rich text pointing at url. An empty url yields plain text.
func LinkValue(label, url string) PropertyValue {
	content := &TextContent{Content: label}
	if url != "" {
		content.Link = &Link{URL: url}
	}
	return PropertyValue{RichText: []RichText{{Text: content}}}
}

// OptionValue builds a single option for either a "status" or a "select" property.
func OptionValue(propertyType, name string) PropertyValue {
	if propertyType == PropertyTypeSelect {
		return PropertyValue{Select: &SelectOption{Name: name}}
	}
	return PropertyValue{Status: &SelectOption{Name: name}}
}

// PlainText joins the text of rich text fragments.
func PlainText(fragments []RichText) string {
	var text string
	for _, fragment := range fragments {
		switch {
		case fragment.PlainText != "":
			text += fragment.PlainText
		case fragment.Text != nil:
			text += fragment.Text.Content
		}
	}
	return text
}

// OptionName returns the selected option name of a status or select property.
func (p PropertyValue) OptionName() string {
	if p.Status != nil {
		return p.Status.Name
	}
	if p.Select != nil {
		return p.Select.Name
	}
	return ""
}

func (p PropertyValue) OptionNames() []string {
	names := make([]string, 0, len(p.MultiSelect))
	for _, option := range p.MultiSelect {
		names = append(names, option.Name)
	}
	return names
}

// LinkURL returns the first link target found in rich text, or its text when no link is set.
func (p PropertyValue) LinkURL() string {
	for _, fragment := range p.RichText {
		if fragment.Href != "" {
			return fragment.Href
		}
		if fragment.Text != nil && fragment.Text.Link != nil {
			return fragment.Text.Link.URL
		}
	}
	return PlainText(p.RichText)
}
