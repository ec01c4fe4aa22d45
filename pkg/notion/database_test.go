package notion

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient implements Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	args := m.Called(ctx, dbID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.DatabaseQueryResponse), args.Error(1)
}

func (m *MockClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.Page), args.Error(1)
}

func TestQueryAll_FollowsCursor(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db", mock.MatchedBy(func(r *notionapi.DatabaseQueryRequest) bool {
		return r.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results:    []notionapi.Page{{ID: "p1"}},
		HasMore:    true,
		NextCursor: "c2",
	}, nil).Once()
	mc.On("QueryDatabase", ctx, "db", mock.MatchedBy(func(r *notionapi.DatabaseQueryRequest) bool {
		return r.StartCursor == "c2"
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{{ID: "p2"}},
	}, nil).Once()

	pages, err := QueryAll(ctx, mc, "db", nil)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, notionapi.ObjectID("p2"), pages[1].ID)
	mc.AssertExpectations(t)
}

func TestQueryAll_Error(t *testing.T) {
	mc := new(MockClient)
	mc.On("QueryDatabase", mock.Anything, "db", mock.Anything).Return(nil, errors.New("429"))

	_, err := QueryAll(context.Background(), mc, "db", nil)
	assert.ErrorContains(t, err, "notion: query all page")
}

func TestCreateRow(t *testing.T) {
	mc := new(MockClient)
	mc.On("CreatePage", mock.Anything, mock.MatchedBy(func(r *notionapi.PageCreateRequest) bool {
		title, ok := r.Properties["Company"].(notionapi.TitleProperty)
		if !ok || title.Title[0].Text.Content != "Beta AG" {
			return false
		}
		email, ok := r.Properties["E-Mail"].(notionapi.RichTextProperty)
		if !ok || email.RichText[0].Text.Content != "x@beta.at" {
			return false
		}
		_, hasRegion := r.Properties["Region"]
		return !hasRegion && r.Parent.DatabaseID == "db"
	})).Return(&notionapi.Page{ID: "new"}, nil)

	err := CreateRow(context.Background(), mc, "db",
		[]string{"Region", "Company", "", "E-Mail"}, 1,
		[]string{"", "Beta AG", "dropped", "x@beta.at"})
	require.NoError(t, err)
	mc.AssertExpectations(t)
}

func TestRowValues(t *testing.T) {
	p := notionapi.Page{Properties: notionapi.Properties{
		"Company": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "Beta "}, {PlainText: "AG"}}},
		"E-Mail":  &notionapi.EmailProperty{Email: "x@beta.at"},
		"Region":  &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "Wien"}}},
		"Count":   &notionapi.NumberProperty{Number: 3},
	}}

	got := RowValues(p, []string{"Company", "", "E-Mail", "Region", "Count", "Missing"})
	assert.Equal(t, []string{"Beta AG", "", "x@beta.at", "Wien", "", ""}, got)
}
