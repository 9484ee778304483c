package types

type ApiErrorResponse struct {
	Error string `json:"error"`
}

type ApiHealthResponse struct {
	Status string `json:"status"`
}

type ApiAvailabilityResponse struct {
	Available bool `json:"available"`
}

type ApiCommitmentRequest struct {
	Name    string `json:"name" valid:"required"`
	Address string `json:"address" valid:"required"`
}

type ApiCommitmentResponse struct {
	Salt string `json:"salt"`
	Tx   string `json:"tx"`
}

type ApiRegisterRequest struct {
	Name     string `json:"name" valid:"required"`
	Duration uint64 `json:"duration" valid:"required"`
	Salt     string `json:"salt" valid:"required"`
	Address  string `json:"address" valid:"required"`
}

type ApiSetAddressRequest struct {
	Name       string `json:"name" valid:"required"`
	NewAddress string `json:"newAddress" valid:"required"`
}

type ApiTransferRequest struct {
	Name    string `json:"name" valid:"required"`
	Address string `json:"address" valid:"required"`
}

type ApiTxResponse struct {
	Tx string `json:"tx"`
}
