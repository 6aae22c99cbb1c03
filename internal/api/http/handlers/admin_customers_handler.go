package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/api/dto"
	"github.com/auroranet/portal-service/internal/service"
)

// AdminCustomersHandler serves the back-office customer directory.
type AdminCustomersHandler struct {
	service   *service.CustomerService
	snapshots SnapshotStore
}

// NewAdminCustomersHandler constructs handler.
func NewAdminCustomersHandler(customerService *service.CustomerService, snapshots SnapshotStore) *AdminCustomersHandler {
	return &AdminCustomersHandler{service: customerService, snapshots: snapshots}
}

// List GET /api/admin/customers.
func (h *AdminCustomersHandler) List(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	query := service.AdminCustomerQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	return listWithSnapshot(c, h.snapshots, func() (fiber.Map, error) {
		customers, pagination, err := h.service.AdminList(c.UserContext(), query)
		if err != nil {
			return nil, err
		}
		return listEnvelope("customers", dto.NewUserResponses(customers), pagination), nil
	})
}
