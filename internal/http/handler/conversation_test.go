package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"joywork.app/api/internal/http/handler"
	"joywork.app/api/internal/model"
	"joywork.app/api/internal/service"
)

var _ = Describe("ConversationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockConversationService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockConversationService{}
		h := handler.NewConversationHandler(svc)

		api := router.Group("", authenticated())
		api.GET("/conversations", h.List)
		api.GET("/conversations/unread-count", h.UnreadCount)
		api.GET("/applications/:id/messages", h.ListMessages)
		api.POST("/applications/:id/messages", h.SendMessage)
		api.POST("/applications/:id/messages/read", h.MarkConversationRead)
		api.POST("/messages/:id/read", h.MarkMessageRead)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("SendMessage", func() {
		It("returns 201 with string ids", func() {
			svc.sendMessageFn = func(_ context.Context, userID, applicationID int64, in service.SendMessageInput) (*model.Message, error) {
				Expect(userID).To(Equal(int64(3)))
				Expect(applicationID).To(Equal(int64(1234567890123456789)))
				Expect(in.Content).To(Equal("hello"))
				Expect(in.Kind).To(BeEmpty())
				return &model.Message{
					ID:            1234567890123456790,
					ApplicationID: applicationID,
					SenderID:      userID,
					Content:       in.Content,
					Kind:          model.MessageKindText,
					CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
					Sender:        &model.Participant{ID: userID, Name: "u3"},
				}, nil
			}

			w := serve(request(http.MethodPost, "/applications/1234567890123456789/messages", `{"content":"hello"}`, 3))

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("1234567890123456790"))
			Expect(resp["application_id"]).To(Equal("1234567890123456789"))
			Expect(resp["kind"]).To(Equal("TEXT"))
			Expect(resp["is_read"]).To(BeFalse())
			Expect(resp["sender"]).To(HaveKeyWithValue("name", "u3"))
		})

		It("passes file messages through", func() {
			svc.sendMessageFn = func(_ context.Context, _, _ int64, in service.SendMessageInput) (*model.Message, error) {
				Expect(in.Kind).To(Equal(model.MessageKindImage))
				Expect(in.FileURL).To(HaveValue(Equal("https://cdn.joywork.test/a.png")))
				return &model.Message{Kind: in.Kind, FileURL: in.FileURL}, nil
			}

			w := serve(request(http.MethodPost, "/applications/1/messages",
				`{"kind":"IMAGE","file_url":"https://cdn.joywork.test/a.png"}`, 3))

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("returns 400 for an unknown kind", func() {
			w := serve(request(http.MethodPost, "/applications/1/messages", `{"kind":"VIDEO","content":"x"}`, 3))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a malformed application id", func() {
			w := serve(request(http.MethodPost, "/applications/abc/messages", `{"content":"x"}`, 3))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("reports service validation with the field", func() {
			svc.sendMessageFn = func(context.Context, int64, int64, service.SendMessageInput) (*model.Message, error) {
				return nil, &service.ValidationError{Field: "content", Message: "must not be empty"}
			}

			w := serve(request(http.MethodPost, "/applications/1/messages", `{"content":" "}`, 3))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"content: must not be empty","code":"validation_failed","field":"content"}`))
		})

		It("requires a session", func() {
			req := httptest.NewRequest(http.MethodPost, "/applications/1/messages", nil)
			Expect(serve(req).Code).To(Equal(http.StatusUnauthorized))
		})
	})

	DescribeTable("maps service errors",
		func(err error, status int, code string) {
			svc.listMessagesFn = func(context.Context, int64, int64, model.Pagination) (*model.Page[model.Message], error) {
				return nil, err
			}

			w := serve(request(http.MethodGet, "/applications/1/messages", "", 3))

			Expect(w.Code).To(Equal(status))
			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["code"]).To(Equal(code))
		},
		Entry("not found", service.ErrApplicationNotFound, http.StatusNotFound, "not_found"),
		Entry("forbidden", service.ErrNotParticipant, http.StatusForbidden, "forbidden"),
		Entry("rate limited", service.ErrOpenTicketLimit, http.StatusTooManyRequests, "rate_limited"),
		Entry("conflict", service.ErrConflict, http.StatusConflict, "conflict"),
		Entry("anything else", errors.New("pool exhausted"), http.StatusInternalServerError, "internal_error"),
	)

	It("hides internal error details", func() {
		svc.listConversationsFn = func(context.Context, int64, model.Pagination) (*model.Page[model.Conversation], error) {
			return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
		}

		w := serve(request(http.MethodGet, "/conversations", "", 3))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("10.0.0.5"))
	})

	Describe("List", func() {
		It("passes paging through and reports has_more", func() {
			svc.listConversationsFn = func(_ context.Context, userID int64, page model.Pagination) (*model.Page[model.Conversation], error) {
				Expect(userID).To(Equal(int64(4)))
				Expect(page).To(Equal(model.Pagination{Page: 2, Limit: 1}))
				return &model.Page[model.Conversation]{
					Items: []model.Conversation{{
						ApplicationID: 100,
						JobTitle:      "Backend Engineer",
						Company:       model.CompanySummary{ID: 20, Name: "Acme"},
						Applicant:     model.Participant{ID: 3, Name: "u3"},
						LastMessage:   &model.Message{ID: 9, Content: "hi"},
						UnreadCount:   1,
					}},
					Total: 3,
					Page:  2,
					Limit: 1,
				}, nil
			}

			w := serve(request(http.MethodGet, "/conversations?page=2&limit=1", "", 4))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Items []struct {
					ApplicationID string `json:"application_id"`
					UnreadCount   int64  `json:"unread_count"`
					LastMessage   struct {
						ID string `json:"id"`
					} `json:"last_message"`
					Company struct {
						Name string `json:"name"`
					} `json:"company"`
				} `json:"items"`
				Total   int64 `json:"total"`
				HasMore bool  `json:"has_more"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Items).To(HaveLen(1))
			Expect(resp.Items[0].ApplicationID).To(Equal("100"))
			Expect(resp.Items[0].UnreadCount).To(Equal(int64(1)))
			Expect(resp.Items[0].LastMessage.ID).To(Equal("9"))
			Expect(resp.Items[0].Company.Name).To(Equal("Acme"))
			Expect(resp.Total).To(Equal(int64(3)))
			Expect(resp.HasMore).To(BeTrue())
		})

		It("rejects a non-positive page", func() {
			w := serve(request(http.MethodGet, "/conversations?page=-1", "", 4))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a page beyond the maximum", func() {
			called := false
			svc.listConversationsFn = func(context.Context, int64, model.Pagination) (*model.Page[model.Conversation], error) {
				called = true
				return &model.Page[model.Conversation]{}, nil
			}

			w := serve(request(http.MethodGet, "/conversations?page=50000000&limit=50", "", 4))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(called).To(BeFalse())
		})
	})

	Describe("UnreadCount", func() {
		It("counts across all conversations by default", func() {
			svc.unreadCountFn = func(_ context.Context, _ int64, applicationID *int64) (int64, error) {
				Expect(applicationID).To(BeNil())
				return 5, nil
			}

			w := serve(request(http.MethodGet, "/conversations/unread-count", "", 4))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"count":5}`))
		})

		It("scopes to one application", func() {
			svc.unreadCountFn = func(_ context.Context, _ int64, applicationID *int64) (int64, error) {
				Expect(applicationID).To(HaveValue(Equal(int64(100))))
				return 1, nil
			}

			w := serve(request(http.MethodGet, "/conversations/unread-count?application_id=100", "", 4))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"count":1}`))
		})

		It("rejects a malformed application id", func() {
			w := serve(request(http.MethodGet, "/conversations/unread-count?application_id=x", "", 4))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("read markers", func() {
		It("reports how many messages were marked", func() {
			svc.markConversationReadFn = func(_ context.Context, userID, applicationID int64) (int64, error) {
				Expect(userID).To(Equal(int64(4)))
				Expect(applicationID).To(Equal(int64(100)))
				return 2, nil
			}

			w := serve(request(http.MethodPost, "/applications/100/messages/read", "", 4))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"updated":2}`))
		})

		It("returns 204 for a single message", func() {
			svc.markMessageReadFn = func(_ context.Context, _, messageID int64) error {
				Expect(messageID).To(Equal(int64(9)))
				return nil
			}

			w := serve(request(http.MethodPost, "/messages/9/read", "", 4))
			Expect(w.Code).To(Equal(http.StatusNoContent))
		})

		It("returns 404 for unknown messages", func() {
			svc.markMessageReadFn = func(context.Context, int64, int64) error {
				return service.ErrMessageNotFound
			}

			w := serve(request(http.MethodPost, "/messages/9/read", "", 4))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
