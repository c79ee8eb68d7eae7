package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
)

var updateQueryRegex = "UPDATE guests SET (.+)"
var insertQueryRegex = "INSERT INTO rsvp_submissions (.+)"

func TestSubmitRSVP(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	h, guests := seedHousehold(t, s, [2]string{"Jane", "Smith"}, [2]string{"John", "Smith"})

	err := s.SubmitRSVP(ctx, models.Submission{
		HouseholdID: h.ID,
		Updates: []models.StatusUpdate{
			{GuestID: guests[0].ID, Status: models.RSVPAccepted},
			{GuestID: guests[1].ID, Status: models.RSVPDeclined},
		},
		Notes: []models.Note{
			{GuestID: guests[0].ID, Message: "Can't wait!", SenderName: "Jane Smith", SenderLastName: "Smith"},
		},
	})
	require.NoError(t, err)

	members, err := s.HouseholdMembers(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPAccepted, members[0].RSVPStatus)
	assert.Equal(t, models.RSVPDeclined, members[1].RSVPStatus)

	messages, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Can't wait!", messages[0].Message)
	assert.Equal(t, "Jane Smith", messages[0].SenderName)
	assert.Equal(t, "Smith Household", messages[0].HouseholdLabel())
	assert.Equal(t, h.ID, messages[0].HouseholdID)
}

func TestSubmitRSVP_ForeignGuestRollsBack(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	h, guests := seedHousehold(t, s, [2]string{"Jane", "Smith"})
	_, strangers := seedHousehold(t, s, [2]string{"Bob", "Jones"})

	err := s.SubmitRSVP(ctx, models.Submission{
		HouseholdID: h.ID,
		Updates: []models.StatusUpdate{
			{GuestID: guests[0].ID, Status: models.RSVPAccepted},
			{GuestID: strangers[0].ID, Status: models.RSVPAccepted},
		},
		Notes: []models.Note{{GuestID: guests[0].ID, Message: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a member of household")

	g, err := s.GetGuest(ctx, guests[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPPending, g.RSVPStatus, "first update must be rolled back")

	messages, err := s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSubmitRSVP_RejectsPendingStatus(t *testing.T) {
	s := createTestStorage(t)
	h, guests := seedHousehold(t, s, [2]string{"Jane", "Smith"})

	err := s.SubmitRSVP(context.Background(), models.Submission{
		HouseholdID: h.ID,
		Updates:     []models.StatusUpdate{{GuestID: guests[0].ID, Status: models.RSVPPending}},
	})
	assert.Error(t, err)
}

func TestSubmitRSVP_NoteInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := New(db, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectPrepare(updateQueryRegex)
	mock.ExpectExec(updateQueryRegex).WithArgs("accepted", AnyTime{}, "g1", "h1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(insertQueryRegex)
	mock.ExpectExec(insertQueryRegex).WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	err = s.SubmitRSVP(context.Background(), models.Submission{
		HouseholdID: "h1",
		Updates:     []models.StatusUpdate{{GuestID: "g1", Status: models.RSVPAccepted}},
		Notes:       []models.Note{{GuestID: "g1", Message: "hello"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRSVP_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := New(db, DialectPostgres)

	mock.ExpectBegin().WillReturnError(fmt.Errorf("Connection refused"))

	err = s.SubmitRSVP(context.Background(), models.Submission{
		HouseholdID: "h1",
		Updates:     []models.StatusUpdate{{GuestID: "g1", Status: models.RSVPDeclined}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRSVP_CommitFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := New(db, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectPrepare(updateQueryRegex)
	mock.ExpectExec(updateQueryRegex).WithArgs("declined", AnyTime{}, "g1", "h1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(fmt.Errorf("serialization failure"))

	err = s.SubmitRSVP(context.Background(), models.Submission{
		HouseholdID: "h1",
		Updates:     []models.StatusUpdate{{GuestID: "g1", Status: models.RSVPDeclined}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit")
	assert.NoError(t, mock.ExpectationsWereMet())
}
