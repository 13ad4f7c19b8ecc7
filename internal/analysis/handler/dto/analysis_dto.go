package dto

type EstimateResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}
