package navigator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/domain/repository/mocks"
)

func TestJournalWriterAppendsRecordedEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJournalRepository(ctrl)

	var wg sync.WaitGroup
	wg.Add(2)
	repo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Do(func(context.Context, repository.JournalEvent) { wg.Done() }).
		Return(nil).
		Times(2)

	writer := NewJournalWriter(context.Background(), repo)
	writer.Record(repository.JournalEvent{Seq: 1, Op: "navigate", CreatedAt: time.Now()})
	writer.Record(repository.JournalEvent{Seq: 2, Op: "navigate_back", CreatedAt: time.Now()})

	wg.Wait()
	require.NoError(t, writer.Close())
}

func TestJournalWriterDrainsOnClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJournalRepository(ctrl)

	appended := 0
	repo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, repository.JournalEvent) error {
			appended++
			return nil
		}).
		AnyTimes()

	writer := NewJournalWriter(context.Background(), repo)
	for i := 0; i < 10; i++ {
		writer.Record(repository.JournalEvent{Seq: uint64(i), Op: "navigate"})
	}
	require.NoError(t, writer.Close())
	assert.Equal(t, 10, appended, "buffered events flush before shutdown")
}
