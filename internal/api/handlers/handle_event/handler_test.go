package handle_event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/conversation"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
)

type fakeMachine struct {
	got  conversation.Event
	resp conversation.Response
	err  error
}

func (f *fakeMachine) Handle(_ context.Context, ev conversation.Event) (conversation.Response, error) {
	f.got = ev
	if f.err != nil {
		return conversation.Response{}, f.err
	}
	if err := ev.Validate(); err != nil {
		return conversation.Response{}, err
	}
	return f.resp, nil
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	machine := &fakeMachine{resp: conversation.Response{Messages: []conversation.Message{
		{Text: "Choose a service:", Choices: []conversation.Choice{{Label: "Haircut", Data: "service:Haircut"}}},
		{Text: "Main menu", ShowMenu: true},
	}}}
	h := NewHandler(machine, logger.NewNop())

	rec := serve(h, `{"customerId":7,"kind":"contact","senderName":"Aram",
		"contact":{"userId":7,"phoneNumber":"+37491234567","firstName":"Aram"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, conversation.KindContact, machine.got.Kind)
	require.NotNil(t, machine.got.Contact)
	assert.Equal(t, "+37491234567", machine.got.Contact.PhoneNumber)

	var resp EventResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, []ChoiceResponse{{Label: "Haircut", Data: "service:Haircut"}}, resp.Messages[0].Choices)
	assert.True(t, resp.Messages[1].ShowMenu)
}

func TestHandler_Handle_BadRequest(t *testing.T) {
	h := NewHandler(&fakeMachine{}, logger.NewNop())

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"customerId":`},
		{name: "unknown field", body: `{"customerId":7,"kind":"text","extra":true}`},
		{name: "unknown kind", body: `{"customerId":7,"kind":"sticker"}`},
		{name: "missing customer", body: `{"kind":"text","text":"hi"}`},
		{name: "contact without payload", body: `{"customerId":7,"kind":"contact"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, serve(h, tt.body).Code)
		})
	}
}

func TestHandler_Handle_InternalError(t *testing.T) {
	h := NewHandler(&fakeMachine{err: fmt.Errorf("wrapped: %w", errors.New("boom"))}, logger.NewNop())

	rec := serve(h, `{"customerId":7,"kind":"text","text":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
