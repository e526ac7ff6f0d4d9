package service

import (
	"testing"

	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageConversations(t *testing.T) {
	f := newFixture(t)
	ada := f.user(t, "ada@example.com")
	alan := f.user(t, "alan@example.com")
	grace := f.user(t, "grace@example.com")
	svc := NewMessageService(f.messages, f.users, nil)

	_, err := svc.Send(alan, SendMessageInput{RecipientID: ada.UserID, Content: "hi ada"})
	require.NoError(t, err)
	_, err = svc.Send(alan, SendMessageInput{RecipientID: ada.UserID, Content: "  are you there?  "})
	require.NoError(t, err)
	_, err = svc.Send(ada, SendMessageInput{RecipientID: grace.UserID, Content: "hello grace"})
	require.NoError(t, err)

	convs, err := svc.Conversations(ada)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, grace.UserID, convs[0].Peer.ID)
	assert.Equal(t, "grace@example.com", convs[0].Peer.FullName)
	assert.Zero(t, convs[0].Unread)
	assert.Equal(t, alan.UserID, convs[1].Peer.ID)
	assert.Equal(t, "are you there?", convs[1].LastMessage.Content)
	assert.Equal(t, 2, convs[1].Unread)

	msgs, err := svc.Read(ada, alan.UserID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi ada", msgs[0].Content)
	assert.NotNil(t, msgs[0].ReadAt)

	convs, err = svc.Conversations(ada)
	require.NoError(t, err)
	assert.Zero(t, convs[1].Unread)

	// the sender's view is unaffected by the recipient's unread count
	convs, err = svc.Conversations(alan)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Zero(t, convs[0].Unread)
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t)
	ada := f.user(t, "ada@example.com")
	svc := NewMessageService(f.messages, f.users, nil)

	_, err := svc.Send(ada, SendMessageInput{RecipientID: ada.UserID, Content: "me"})
	assert.ErrorIs(t, err, util.ErrSelfMessage)

	_, err = svc.Send(ada, SendMessageInput{RecipientID: 9999, Content: "nobody"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = svc.Read(ada, 9999, 0)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	msgs, err := svc.Read(ada, f.user(t, "alan@example.com").UserID, 10)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}
