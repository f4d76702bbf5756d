package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/application/port"
	"github.com/Aurelio-One/p9/internal/domain/bill"
	"github.com/Aurelio-One/p9/internal/domain/submission"
)

func newTestFlow(store *mockStore) (*NewBillFlow, *mockNavigator, *mockAlerter) {
	navigator := &mockNavigator{}
	alerter := &mockAlerter{}
	flow := NewNewBillFlow(store, navigator, alerter, "a@a", zap.NewNop())
	return flow, navigator, alerter
}

func TestNewBillFlow_StageFile_ExtensionGate(t *testing.T) {
	t.Run("allowed extensions reach the store once", func(t *testing.T) {
		for _, name := range []string{"hello.png", "hello.jpg", "hello.jpeg", "HELLO.PNG", "photo.JpG"} {
			store := &mockStore{
				createFileFunc: func(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
					return port.FileRef{FileURL: "fileUrl", Key: "key"}, nil
				},
			}
			flow, _, alerter := newTestFlow(store)

			err := flow.StageFile(context.Background(), port.File{Name: name, Content: []byte("hello")})

			require.NoError(t, err, name)
			assert.Equal(t, 1, store.createCalls, name)
			assert.Empty(t, alerter.messages, name)
			assert.Equal(t, submission.StateFileStaged, flow.State(), name)
		}
	})

	t.Run("disallowed extension warns and never contacts the store", func(t *testing.T) {
		for _, name := range []string{"hello.txt", "hello.pdf", "hello.gif", "hello"} {
			store := &mockStore{}
			flow, _, alerter := newTestFlow(store)

			err := flow.StageFile(context.Background(), port.File{Name: name, Content: []byte("hello")})

			require.ErrorIs(t, err, ErrUnsupportedFileFormat, name)
			assert.Equal(t, 0, store.createCalls, name)
			require.Len(t, alerter.messages, 1, name)
			assert.Equal(t, "Erreur : seuls les fichiers JPG, JPEG et PNG sont autorisés", alerter.messages[0])
			assert.Equal(t, submission.StateAwaitingFile, flow.State(), name)
		}
	})
}

func TestNewBillFlow_StageFile_RecordsUploadResult(t *testing.T) {
	store := &mockStore{
		createFileFunc: func(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
			assert.Equal(t, "a@a", ownerEmail)
			return port.FileRef{FileURL: "fileUrl", Key: "key"}, nil
		},
	}
	flow, _, _ := newTestFlow(store)

	err := flow.StageFile(context.Background(), port.File{Name: "hello.png", Content: []byte("hello")})

	require.NoError(t, err)
	draft := flow.Draft()
	assert.Equal(t, "key", draft.BillID)
	assert.Equal(t, "fileUrl", draft.FileURL)
	assert.Equal(t, "hello.png", draft.FileName)
	assert.True(t, draft.Staged())
}

func TestNewBillFlow_StageFile_UploadFailureAllowsRetry(t *testing.T) {
	uploadErr := errors.New("Erreur 500")
	store := &mockStore{
		createFileFunc: func(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
			return port.FileRef{}, uploadErr
		},
	}
	flow, _, alerter := newTestFlow(store)

	err := flow.StageFile(context.Background(), port.File{Name: "hello.png", Content: []byte("hello")})

	require.ErrorIs(t, err, uploadErr)
	assert.Equal(t, submission.StateAwaitingFile, flow.State())
	assert.False(t, flow.Draft().Staged())
	assert.Empty(t, alerter.messages)

	// retry succeeds
	store.createFileFunc = func(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
		return port.FileRef{FileURL: "fileUrl", Key: "key"}, nil
	}
	require.NoError(t, flow.StageFile(context.Background(), port.File{Name: "hello.png", Content: []byte("hello")}))
	assert.Equal(t, submission.StateFileStaged, flow.State())
}

func TestNewBillFlow_Submit(t *testing.T) {
	t.Run("full scenario assembles payload and navigates", func(t *testing.T) {
		store := &mockStore{
			createFileFunc: func(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
				return port.FileRef{FileURL: "fileUrl", Key: "key"}, nil
			},
		}
		flow, navigator, _ := newTestFlow(store)

		require.NoError(t, flow.StageFile(context.Background(), port.File{Name: "hello.png", Content: []byte("hello")}))

		flow.Submit(context.Background(), FormFields{
			Type:       "Transports",
			Name:       "Name",
			Date:       "2022-06-02",
			Amount:     "364",
			VAT:        "80",
			Pct:        "20",
			Commentary: "",
		})

		assert.Equal(t, 1, store.updateCalls)
		payload := store.lastPayload
		assert.Equal(t, "key", payload.ID)
		assert.Equal(t, "a@a", payload.Email)
		assert.Equal(t, "Transports", payload.Type)
		assert.Equal(t, "Name", payload.Name)
		assert.Equal(t, "2022-06-02", payload.Date)
		assert.Equal(t, float64(364), payload.Amount)
		assert.Equal(t, "80", payload.VAT)
		assert.Equal(t, 20, payload.Pct)
		assert.Equal(t, bill.StatusPending, payload.Status)
		assert.Equal(t, "fileUrl", payload.FileURL)
		assert.Equal(t, "hello.png", payload.FileName)

		assert.Equal(t, submission.StateSubmitted, flow.State())
		require.Len(t, navigator.routes, 1)
		assert.Equal(t, bill.RouteBills, navigator.routes[0])
	})

	t.Run("empty fields submit without crashing", func(t *testing.T) {
		store := &mockStore{}
		flow, navigator, _ := newTestFlow(store)

		flow.Submit(context.Background(), FormFields{})

		assert.Equal(t, 1, store.updateCalls)
		payload := store.lastPayload
		assert.Empty(t, payload.ID)
		assert.Empty(t, payload.FileURL)
		assert.Empty(t, payload.FileName)
		assert.Zero(t, payload.Amount)
		assert.Equal(t, 20, payload.Pct) // default when pct is empty
		assert.Equal(t, bill.StatusPending, payload.Status)
		require.Len(t, navigator.routes, 1)
		assert.Equal(t, bill.RouteBills, navigator.routes[0])
	})

	t.Run("update failure still navigates to bill list", func(t *testing.T) {
		store := &mockStore{
			updateFunc: func(ctx context.Context, payload bill.Bill) (bill.Bill, error) {
				return bill.Bill{}, errors.New("Erreur 500")
			},
		}
		flow, navigator, _ := newTestFlow(store)

		flow.Submit(context.Background(), FormFields{Name: "Name"})

		assert.Equal(t, submission.StateSubmitted, flow.State())
		require.Len(t, navigator.routes, 1)
		assert.Equal(t, bill.RouteBills, navigator.routes[0])
	})
}
