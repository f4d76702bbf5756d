package service

import (
	"context"

	"github.com/Aurelio-One/p9/internal/application/port"
	"github.com/Aurelio-One/p9/internal/domain/bill"
)

type mockStore struct {
	listFunc       func(ctx context.Context) ([]bill.Bill, error)
	createFileFunc func(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error)
	updateFunc     func(ctx context.Context, payload bill.Bill) (bill.Bill, error)

	createCalls int
	updateCalls int
	lastPayload bill.Bill
}

func (m *mockStore) List(ctx context.Context) ([]bill.Bill, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) CreateFile(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
	m.createCalls++
	if m.createFileFunc != nil {
		return m.createFileFunc(ctx, file, ownerEmail)
	}
	return port.FileRef{}, nil
}

func (m *mockStore) Update(ctx context.Context, payload bill.Bill) (bill.Bill, error) {
	m.updateCalls++
	m.lastPayload = payload
	if m.updateFunc != nil {
		return m.updateFunc(ctx, payload)
	}
	return payload, nil
}

type mockNavigator struct {
	routes []bill.Route
}

func (m *mockNavigator) NavigateTo(route bill.Route) {
	m.routes = append(m.routes, route)
}

type mockAlerter struct {
	messages []string
}

func (m *mockAlerter) Alert(message string) {
	m.messages = append(m.messages, message)
}

type mockPreviewer struct {
	urls []string
}

func (m *mockPreviewer) ShowImagePreview(url string) {
	m.urls = append(m.urls, url)
}
