package handlers

import (
	"context"
	"net/http"

	"ens-api/ens"
	"ens-api/types"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
)

// EnsService is the orchestration core as seen by the api
type EnsService interface {
	Identity() common.Address
	CheckAvailability(ctx context.Context, name string) (bool, error)
	MakeCommitment(ctx context.Context, name, address string) (*ens.CommitResult, error)
	Register(ctx context.Context, name string, duration uint64, salt, address string) (*ens.TxResult, error)
	SetAddress(ctx context.Context, name, newAddress string) (*ens.TxResult, error)
	TransferEns(ctx context.Context, name, newOwner string) (*ens.TxResult, error)
	TransferRegister(ctx context.Context, name, newOwner string) (*ens.TxResult, error)
}

// DomainIndex answers domain listing queries from the index
type DomainIndex interface {
	DomainsOwnedBy(ctx context.Context, owner string) (*types.SubgraphDomains, error)
	DomainInfo(ctx context.Context, name string) (*types.SubgraphDomains, error)
}

type EnsApi struct {
	ens   EnsService
	index DomainIndex
}

func NewEnsApi(service EnsService, index DomainIndex) *EnsApi {
	return &EnsApi{ens: service, index: index}
}

// decodeValidRequest decodes the json body into dst and answers 400 if it is malformed or incomplete
func decodeValidRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeRequest(r, w, dst); err != nil {
		logger.WithError(err).Debug("rejected request body")
		sendErrorResponse(w, r.URL.String(), http.StatusBadRequest, missingParametersMessage)
		return false
	}
	if ok, err := govalidator.ValidateStruct(dst); !ok {
		logger.WithError(err).Debug("rejected request body")
		sendErrorResponse(w, r.URL.String(), http.StatusBadRequest, missingParametersMessage)
		return false
	}
	return true
}

func sendTxResult(w http.ResponseWriter, r *http.Request, res *ens.TxResult, err error) {
	if err != nil {
		sendServerErrorResponse(w, r, err)
		return
	}
	if res.Error != nil {
		sendErrorResponse(w, r.URL.String(), http.StatusBadRequest, res.Error.Message)
		return
	}
	sendJSONResponse(w, r.URL.String(), http.StatusOK, &types.ApiTxResponse{Tx: res.Tx})
}

// ApiCheck godoc
// @Summary Check if an ens name is available for registration
// @Tags Private
// @Produce  json
// @Param  name query string true "Name with or without the .eth suffix"
// @Success 200 {object} types.ApiAvailabilityResponse
// @Router /api/v1/private/check [get]
func (api *EnsApi) ApiCheck(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		sendErrorResponse(w, r.URL.String(), http.StatusBadRequest, missingParametersMessage)
		return
	}

	available, err := api.ens.CheckAvailability(r.Context(), name)
	if err != nil {
		sendServerErrorResponse(w, r, err)
		return
	}
	sendJSONResponse(w, r.URL.String(), http.StatusOK, &types.ApiAvailabilityResponse{Available: available})
}

// ApiCommitment godoc
// @Summary Send the commitment for a new registration and return its salt
// @Tags Private
// @Accept  json
// @Produce  json
// @Param  request body types.ApiCommitmentRequest true "Name and target address"
// @Success 200 {object} types.ApiCommitmentResponse
// @Router /api/v1/private/commitment [post]
func (api *EnsApi) ApiCommitment(w http.ResponseWriter, r *http.Request) {
	req := &types.ApiCommitmentRequest{}
	if !decodeValidRequest(w, r, req) {
		return
	}

	res, err := api.ens.MakeCommitment(r.Context(), req.Name, req.Address)
	if err != nil {
		sendServerErrorResponse(w, r, err)
		return
	}
	if res.Error != nil {
		sendErrorResponse(w, r.URL.String(), http.StatusBadRequest, res.Error.Message)
		return
	}
	if !res.Available {
		sendJSONResponse(w, r.URL.String(), http.StatusOK, &types.ApiAvailabilityResponse{Available: false})
		return
	}
	sendJSONResponse(w, r.URL.String(), http.StatusOK, &types.ApiCommitmentResponse{Salt: res.Salt, Tx: res.Tx})
}

// ApiRegister godoc
// @Summary Register a previously committed name
// @Tags Private
// @Accept  json
// @Produce  json
// @Param  request body types.ApiRegisterRequest true "Name, duration in seconds, salt and target address"
// @Success 200 {object} types.ApiTxResponse
// @Router /api/v1/private/register [post]
func (api *EnsApi) ApiRegister(w http.ResponseWriter, r *http.Request) {
	req := &types.ApiRegisterRequest{}
	if !decodeValidRequest(w, r, req) {
		return
	}
	res, err := api.ens.Register(r.Context(), req.Name, req.Duration, req.Salt, req.Address)
	sendTxResult(w, r, res, err)
}

// ApiSetAddress godoc
// @Summary Point the address record of a name at a new address
// @Tags Private
// @Accept  json
// @Produce  json
// @Param  request body types.ApiSetAddressRequest true "Name and new address"
// @Success 200 {object} types.ApiTxResponse
// @Router /api/v1/private/setAddress [post]
func (api *EnsApi) ApiSetAddress(w http.ResponseWriter, r *http.Request) {
	req := &types.ApiSetAddressRequest{}
	if !decodeValidRequest(w, r, req) {
		return
	}
	res, err := api.ens.SetAddress(r.Context(), req.Name, req.NewAddress)
	sendTxResult(w, r, res, err)
}

// ApiTransferEns godoc
// @Summary Transfer the registrar token of a name
// @Tags Private
// @Accept  json
// @Produce  json
// @Param  request body types.ApiTransferRequest true "Name and new owner"
// @Success 200 {object} types.ApiTxResponse
// @Router /api/v1/private/transferEns [post]
func (api *EnsApi) ApiTransferEns(w http.ResponseWriter, r *http.Request) {
	req := &types.ApiTransferRequest{}
	if !decodeValidRequest(w, r, req) {
		return
	}
	res, err := api.ens.TransferEns(r.Context(), req.Name, req.Address)
	sendTxResult(w, r, res, err)
}

// ApiTransferRegister godoc
// @Summary Transfer the registry ownership of a name
// @Tags Private
// @Accept  json
// @Produce  json
// @Param  request body types.ApiTransferRequest true "Name and new owner"
// @Success 200 {object} types.ApiTxResponse
// @Router /api/v1/private/transferRegister [post]
func (api *EnsApi) ApiTransferRegister(w http.ResponseWriter, r *http.Request) {
	req := &types.ApiTransferRequest{}
	if !decodeValidRequest(w, r, req) {
		return
	}
	res, err := api.ens.TransferRegister(r.Context(), req.Name, req.Address)
	sendTxResult(w, r, res, err)
}

// ApiDomains godoc
// @Summary List the domains owned by the service
// @Tags Private
// @Produce  json
// @Success 200 {object} types.SubgraphDomains
// @Router /api/v1/private/ens [get]
func (api *EnsApi) ApiDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := api.index.DomainsOwnedBy(r.Context(), api.ens.Identity().Hex())
	if err != nil {
		sendServerErrorResponse(w, r, err)
		return
	}
	sendJSONResponse(w, r.URL.String(), http.StatusOK, domains)
}

// ApiDomain godoc
// @Summary Get index information for a single name
// @Tags Private
// @Produce  json
// @Param  name path string true "Name with or without the .eth suffix"
// @Success 200 {object} types.SubgraphDomains
// @Router /api/v1/private/ens/{name} [get]
func (api *EnsApi) ApiDomain(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		sendErrorResponse(w, r.URL.String(), http.StatusBadRequest, missingParametersMessage)
		return
	}

	domains, err := api.index.DomainInfo(r.Context(), name)
	if err != nil {
		sendServerErrorResponse(w, r, err)
		return
	}
	sendJSONResponse(w, r.URL.String(), http.StatusOK, domains)
}
