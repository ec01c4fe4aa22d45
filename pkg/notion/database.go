package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll fetches all pages from a Notion database, following the cursor
// one page at a time. Rate limiting is enforced by the Client.
func QueryAll(ctx context.Context, c Client, dbID string, base *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	var all []notionapi.Page

	req := &notionapi.DatabaseQueryRequest{}
	if base != nil {
		req.Filter = base.Filter
		req.Sorts = base.Sorts
		req.PageSize = base.PageSize
	}

	for {
		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all page")
		}

		all = append(all, resp.Results...)

		if !resp.HasMore {
			break
		}
		req.StartCursor = resp.NextCursor
	}

	return all, nil
}

// CreateRow adds one page to the database. The title property gets the
// value at titleIdx; every other non-empty cell becomes a rich_text property
// named by its header. Cells without a header are dropped.
func CreateRow(ctx context.Context, c Client, dbID string, headers []string, titleIdx int, row []string) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: rowProperties(headers, titleIdx, row),
	}
	if _, err := c.CreatePage(ctx, req); err != nil {
		return eris.Wrap(err, "notion: create row")
	}
	return nil
}

func rowProperties(headers []string, titleIdx int, row []string) notionapi.Properties {
	props := make(notionapi.Properties)
	for i, h := range headers {
		if h == "" {
			continue
		}
		v := ""
		if i < len(row) {
			v = row[i]
		}
		if i == titleIdx {
			props[h] = notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: v}}},
			}
			continue
		}
		if v == "" {
			continue
		}
		props[h] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: v}}},
		}
	}
	return props
}

// RowValues reads the named properties of a page as plain strings, in
// header order. Missing or unsupported properties read as "".
func RowValues(p notionapi.Page, headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		out[i] = PlainText(p.Properties[h])
	}
	return out
}

// PlainText renders the text-like property kinds.
func PlainText(prop notionapi.Property) string {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return joinText(p.Title)
	case *notionapi.RichTextProperty:
		return joinText(p.RichText)
	case *notionapi.EmailProperty:
		return p.Email
	case *notionapi.URLProperty:
		return p.URL
	case *notionapi.PhoneNumberProperty:
		return p.PhoneNumber
	case *notionapi.SelectProperty:
		return p.Select.Name
	case *notionapi.StatusProperty:
		return p.Status.Name
	}
	return ""
}

func joinText(rts []notionapi.RichText) string {
	var s string
	for _, rt := range rts {
		s += rt.PlainText
	}
	return s
}
