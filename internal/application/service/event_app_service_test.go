package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

const testPackageID = "0xpkg"

func newEventService(chain *fakeChain, audit *fakeAudit) *EventAppService {
	return NewEventAppService(chain, fakeSigner{}, audit, logger.NewNop(), testPackageID)
}

func TestCreateEventBuildsEnvelope(t *testing.T) {
	chainFake := newFakeChain()
	chainFake.effects = &models.TxEffects{
		Digest: "0xdigest",
		Status: "success",
		Created: []models.OwnedRef{
			{ObjectID: "0xevent1", Type: "0xpkg::event::Event", Owner: "0xsender"},
		},
	}
	audit := &fakeAudit{}
	svc := newEventService(chainFake, audit)

	resp, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Title:       "GopherCon",
		Description: "Annual Go conference",
		StartsAt:    "2025-06-01T09:00",
		EndsAt:      "2025-06-01T17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdigest", resp.Digest)
	assert.Equal(t, "0xevent1", resp.EventID)

	tx := chainFake.lastTx()
	require.NotNil(t, tx)
	assert.Equal(t, "0xsender", tx.Sender)
	require.Len(t, tx.Calls, 2)

	create := tx.Calls[0]
	assert.Equal(t, "0xpkg::event::create", create.Target)
	require.Len(t, create.Args, 5)
	assert.Equal(t, "0xsender", create.Args[0].Pure)
	// Title travels as a byte vector.
	assert.Equal(t, []int{'G', 'o', 'p', 'h', 'e', 'r', 'C', 'o', 'n'}, create.Args[1].Pure)

	share := tx.Calls[1]
	assert.Equal(t, "0xpkg::event::share", share.Target)
	require.Len(t, share.Args, 1)
	require.NotNil(t, share.Args[0].Result)
	assert.Equal(t, 0, *share.Args[0].Result)

	require.Len(t, audit.events, 1)
	assert.Equal(t, "create_event", audit.events[0].Kind)
	assert.Equal(t, []string{"0xevent1"}, audit.events[0].CreatedObjects)
}

func TestCreateEventRejectsBadDates(t *testing.T) {
	svc := newEventService(newFakeChain(), &fakeAudit{})

	_, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Title: "X", StartsAt: "not a date", EndsAt: "2025-06-01T17:00",
	})
	assert.True(t, errors.IsCode(err, constants.ErrCodeInvalidRequest))

	// End before start.
	_, err = svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Title: "X", StartsAt: "2025-06-01T17:00", EndsAt: "2025-06-01T09:00",
	})
	assert.True(t, errors.IsCode(err, constants.ErrCodeInvalidRequest))
}

func TestCreateEventSurfacesChainFailure(t *testing.T) {
	chainFake := newFakeChain()
	chainFake.execErr = errors.ChainRPC(assert.AnError, "executeTransactionBlock")
	svc := newEventService(chainFake, &fakeAudit{})

	_, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Title: "X", StartsAt: "2025-06-01T09:00", EndsAt: "2025-06-01T17:00",
	})
	assert.True(t, errors.IsCode(err, constants.ErrCodeChainRPC))
}

func TestCreateEventFailedEffects(t *testing.T) {
	chainFake := newFakeChain()
	chainFake.effects = &models.TxEffects{Digest: "0xdigest", Status: "failure"}
	svc := newEventService(chainFake, &fakeAudit{})

	_, err := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Title: "X", StartsAt: "2025-06-01T09:00", EndsAt: "2025-06-01T17:00",
	})
	assert.True(t, errors.IsCode(err, constants.ErrCodeChainRPC))
}
