package dto

type ShowOrdersRequest struct {
	Secret string `json:"secret" form:"secret" validate:"required"`
}
