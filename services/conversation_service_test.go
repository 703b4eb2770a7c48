package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
)

func TestParticipantKey(t *testing.T) {
	ids, key := participantKey([]uint{7, 2, 7, 0, 11})
	assert.Equal(t, []uint{2, 7, 11}, ids)
	assert.Equal(t, "2,7,11", key)
}

func TestConversationIsSharedByParticipantSet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewConversationService(db, inlineDispatcher(db))
	employer := createUser(t, db, "acme", models.RoleEmployer)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)

	conv, created, err := svc.Create(ctx, employer, ConversationInput{ParticipantIDs: []uint{seeker.UserID}})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, conv.Participants, 2)

	again, created, err := svc.Create(ctx, seeker, ConversationInput{ParticipantIDs: []uint{employer.UserID, seeker.UserID}})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, conv.ID, again.ID)

	_, _, err = svc.Create(ctx, seeker, ConversationInput{ParticipantIDs: []uint{seeker.UserID}})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))
	_, _, err = svc.Create(ctx, seeker, ConversationInput{ParticipantIDs: []uint{9999}})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	_, _, err = svc.Create(ctx, seeker, ConversationInput{ParticipantIDs: []uint{employer.UserID}, JobID: ptr(uint(9999))})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	mine, err := svc.ListMine(ctx, seeker)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, conv.ID, mine[0].ID)
}

func TestConversationIsPrivateToParticipants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewConversationService(db, inlineDispatcher(db))
	employer := createUser(t, db, "acme", models.RoleEmployer)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)
	outsider := createUser(t, db, "eve", models.RoleJobSeeker)
	admin := createUser(t, db, "root", models.RoleAdmin)

	conv, _, err := svc.Create(ctx, employer, ConversationInput{ParticipantIDs: []uint{seeker.UserID}})
	require.NoError(t, err)
	msg, err := svc.Send(ctx, employer, conv.ID, "hello")
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		err  error
	}{
		{"get", func() error { _, err := svc.Get(ctx, outsider, conv.ID); return err }()},
		{"send", func() error { _, err := svc.Send(ctx, outsider, conv.ID, "hi"); return err }()},
		{"messages", func() error {
			_, err := svc.Messages(ctx, outsider, conv.ID, utils.Page{Page: 1, Limit: 10})
			return err
		}()},
		{"mark read", func() error { _, err := svc.MarkRead(ctx, outsider, conv.ID, msg.ID); return err }()},
		{"admin get", func() error { _, err := svc.Get(ctx, admin, conv.ID); return err }()},
	} {
		assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(tc.err), tc.name)
	}

	outsiders, err := svc.ListMine(ctx, outsider)
	require.NoError(t, err)
	assert.Empty(t, outsiders)
}

func TestSendPushesToOtherParticipants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pusher := &fakePusher{}
	svc := NewConversationService(db, NewDispatcher(NewNotificationService(db), NewActivityLogService(db), pusher, 0))
	employer := createUser(t, db, "acme", models.RoleEmployer)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)
	recruiter := createUser(t, db, "rita", models.RoleEmployer)

	conv, _, err := svc.Create(ctx, employer, ConversationInput{ParticipantIDs: []uint{seeker.UserID, recruiter.UserID}})
	require.NoError(t, err)

	_, err = svc.Send(ctx, employer, conv.ID, "   ")
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	msg, err := svc.Send(ctx, employer, conv.ID, " Are you free on Monday? ")
	require.NoError(t, err)
	assert.Equal(t, "Are you free on Monday?", msg.Content)
	assert.False(t, msg.Read)

	assert.Equal(t, 2, pusher.calls)
	assert.Equal(t, []string{EventMessage}, pusher.sent[seeker.UserID])
	assert.Equal(t, []string{EventMessage}, pusher.sent[recruiter.UserID])
	assert.Empty(t, pusher.sent[employer.UserID])
	assert.Empty(t, notificationsFor(t, db, seeker.UserID))
}

func TestMessagesPageFromNewest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewConversationService(db, inlineDispatcher(db))
	employer := createUser(t, db, "acme", models.RoleEmployer)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)

	conv, _, err := svc.Create(ctx, employer, ConversationInput{ParticipantIDs: []uint{seeker.UserID}})
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := svc.Send(ctx, employer, conv.ID, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	first, err := svc.Messages(ctx, seeker, conv.ID, utils.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, first.Total)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "m4", first.Items[0].Content)
	assert.Equal(t, "m5", first.Items[1].Content)

	last, err := svc.Messages(ctx, seeker, conv.ID, utils.Page{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "m1", last.Items[0].Content)
}

func TestMarkReadChecksConversation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewConversationService(db, inlineDispatcher(db))
	employer := createUser(t, db, "acme", models.RoleEmployer)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)
	other := createUser(t, db, "ola", models.RoleJobSeeker)

	conv, _, err := svc.Create(ctx, employer, ConversationInput{ParticipantIDs: []uint{seeker.UserID}})
	require.NoError(t, err)
	side, _, err := svc.Create(ctx, employer, ConversationInput{ParticipantIDs: []uint{other.UserID}})
	require.NoError(t, err)
	msg, err := svc.Send(ctx, employer, conv.ID, "offer attached")
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, employer, side.ID, msg.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	read, err := svc.MarkRead(ctx, seeker, conv.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	var stored models.Message
	require.NoError(t, db.First(&stored, msg.ID).Error)
	assert.True(t, stored.Read)
}
