package directory

import "context"

type mockDirectory struct {
	findFn   func(ctx context.Context, email string) ([]Entry, error)
	listFn   func(ctx context.Context, after string, limit int) (Page, error)
	searchFn func(ctx context.Context, token string) ([]Entry, error)
}

func (m *mockDirectory) FindContactsByEmail(ctx context.Context, email string) ([]Entry, error) {
	if m.findFn == nil {
		return nil, nil
	}
	return m.findFn(ctx, email)
}

func (m *mockDirectory) ListContacts(ctx context.Context, after string, limit int) (Page, error) {
	if m.listFn == nil {
		return Page{}, nil
	}
	return m.listFn(ctx, after, limit)
}

func (m *mockDirectory) SearchCompanies(ctx context.Context, token string) ([]Entry, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, token)
}
