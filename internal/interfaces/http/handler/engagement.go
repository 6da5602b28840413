package handler

import (
	"net/http"

	engagementapp "github.com/archerandash/storefront/internal/application/engagement"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles newsletter sign-ups
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *engagementapp.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *engagementapp.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// SubscribeResponse is the body of a newsletter sign-up
// @Description Subscription outcome
type SubscribeResponse struct {
	Success           bool                                `json:"success" example:"true"`
	Message           string                              `json:"message"`
	AlreadySubscribed bool                                `json:"alreadySubscribed"`
	Subscription      *engagementapp.SubscriptionResponse `json:"subscription,omitempty"`
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  201 for a new address, 200 when the address is already on the list
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.SubscribeRequest true "Email"
// @Success      201 {object} SubscribeResponse
// @Success      200 {object} SubscribeResponse
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req engagementapp.SubscribeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.subscriptionService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.AlreadySubscribed {
		c.JSON(http.StatusOK, SubscribeResponse{
			Success:           true,
			Message:           "You are already subscribed!",
			AlreadySubscribed: true,
		})
		return
	}
	c.JSON(http.StatusCreated, SubscribeResponse{
		Success:      true,
		Message:      "Successfully subscribed!",
		Subscription: &result.Subscription,
	})
}

// List godoc
// @Summary      List subscriptions
// @Tags         subscriptions
// @Produce      json
// @Success      200 {object} APIResponse[[]engagementapp.SubscriptionResponse]
// @Security     CookieAuth
// @Router       /subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.subscriptionService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subs)
}

// Delete godoc
// @Summary      Remove a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.subscriptionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ContactHandler handles the contact form
type ContactHandler struct {
	BaseHandler
	inquiryService *engagementapp.InquiryService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(inquiryService *engagementapp.InquiryService) *ContactHandler {
	return &ContactHandler{inquiryService: inquiryService}
}

// ContactResponse is the body of a contact form submission
// @Description Submission acknowledgement
type ContactResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message"`
	ContactID string `json:"contactId"`
}

// Submit godoc
// @Summary      Submit the contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.InquiryRequest true "Enquiry"
// @Success      201 {object} ContactResponse
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req engagementapp.InquiryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	inquiry, err := h.inquiryService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ContactResponse{
		Success:   true,
		Message:   "Your inquiry has been submitted successfully. We will get back to you soon.",
		ContactID: inquiry.ID.String(),
	})
}

// List godoc
// @Summary      List enquiries
// @Tags         contact
// @Produce      json
// @Param        status query string false "new, read, replied or archived"
// @Success      200 {object} APIResponse[[]engagementapp.InquiryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	inquiries, err := h.inquiryService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inquiries)
}

// UpdateStatus godoc
// @Summary      Update an enquiry's status
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id path string true "Enquiry ID" format(uuid)
// @Param        request body engagementapp.UpdateInquiryStatusRequest true "Status"
// @Success      200 {object} APIResponse[engagementapp.InquiryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /contact/{id} [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req engagementapp.UpdateInquiryStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	inquiry, err := h.inquiryService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inquiry)
}
