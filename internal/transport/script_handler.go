// Package transport exposes the script rendering and stored input-script
// routes on the gateway mux.
package transport

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script/confidential"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/vulpemventures/go-elements/transaction"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	modelBase         = "base"
	modelConfidential = "confidential"
)

// ScriptHandler serves script rendering, which needs no storage, and reads of
// the ingested input scripts.
type ScriptHandler struct {
	repo      InputScriptsRepository
	logger    *zap.Logger
	marshaler gwruntime.Marshaler
	mux       *gwruntime.ServeMux
}

// NewScriptHandler returns a ScriptHandler. A nil repo leaves the stored-data
// routes answering Unavailable.
func NewScriptHandler(repo InputScriptsRepository, logger *zap.Logger) *ScriptHandler {
	return &ScriptHandler{
		repo:      repo,
		logger:    logger,
		marshaler: &gwruntime.JSONPb{},
	}
}

// Register adds the routes to mux.
func (h *ScriptHandler) Register(mux *gwruntime.ServeMux) error {
	h.mux = mux

	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/scripts/{script}", h.renderScript},
		{http.MethodPost, "/v1/inputs/inner-scripts", h.innerScripts},
		{http.MethodGet, "/v1/transactions/{txid}/input-scripts", h.inputScripts},
		{http.MethodGet, "/v1/progress", h.progress},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}
	return nil
}

func (h *ScriptHandler) renderScript(w http.ResponseWriter, r *http.Request, params map[string]string) {
	query := r.URL.Query()
	network, err := parseNetwork(query.Get("network"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	raw, err := decodeHex("script", params["script"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	blindingKey, err := decodeHex("blinding_key", query.Get("blinding_key"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var s script.Script
	switch strings.ToLower(query.Get("model")) {
	case "", modelBase:
		s = script.Base(raw)
	case modelConfidential:
		s = confidential.NewScript(raw).WithBlindingKey(blindingKey)
	default:
		h.fail(w, r, status.Errorf(codes.InvalidArgument, "unsupported model %q", query.Get("model")))
		return
	}

	h.respond(w, r, script.Render(s, network))
}

func (h *ScriptHandler) innerScripts(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req innerScriptsRequest
	if err := h.marshaler.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, status.Errorf(codes.InvalidArgument, "decode request: %v", err))
		return
	}

	network, err := parseNetwork(req.Network)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	in, prevout, err := spendOf(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, innerScriptsResponse{
		Prevout:        script.Render(prevout.PkScript(), network),
		InnerRendering: script.RenderInner(script.InnerScriptsOf(in, prevout), network),
	})
}

func (h *ScriptHandler) inputScripts(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if h.repo == nil {
		h.fail(w, r, status.Error(codes.Unavailable, "input scripts storage is not configured"))
		return
	}
	coin, network, err := parseChain(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	txid := params["txid"]
	if _, err := chainhash.NewHashFromStr(txid); err != nil || len(txid) != 2*chainhash.HashSize {
		h.fail(w, r, status.Errorf(codes.InvalidArgument, "invalid txid %q", txid))
		return
	}

	rows, err := h.repo.InputScriptsByTxID(r.Context(), coin, network, txid)
	if err != nil {
		h.logger.Error("input scripts lookup failed", zap.String("txid", txid), zap.Error(err))
		h.fail(w, r, status.Error(codes.Internal, "input scripts lookup failed"))
		return
	}
	if len(rows) == 0 {
		h.fail(w, r, status.Errorf(codes.NotFound, "no wrapped inputs stored for %s", txid))
		return
	}

	resp := inputScriptsResponse{TxID: txid, Inputs: make([]inputScriptsRow, 0, len(rows))}
	for _, row := range rows {
		resp.Inputs = append(resp.Inputs, newInputScriptsRow(row))
	}
	h.respond(w, r, resp)
}

func (h *ScriptHandler) progress(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.repo == nil {
		h.fail(w, r, status.Error(codes.Unavailable, "input scripts storage is not configured"))
		return
	}
	coin, network, err := parseChain(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	height, ok, err := h.repo.MaxProcessedHeight(r.Context(), coin, network)
	if err != nil {
		h.logger.Error("processed height lookup failed", zap.Error(err))
		h.fail(w, r, status.Error(codes.Internal, "processed height lookup failed"))
		return
	}
	h.respond(w, r, progressResponse{Coin: coin, Network: network, Height: height, HasHeight: ok})
}

func (h *ScriptHandler) respond(w http.ResponseWriter, r *http.Request, v any) {
	body, err := h.marshaler.Marshal(v)
	if err != nil {
		h.fail(w, r, status.Errorf(codes.Internal, "encode response: %v", err))
		return
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(v))
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("write response failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h *ScriptHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := status.FromError(err); !ok {
		err = status.Error(codes.Internal, err.Error())
	}
	gwruntime.HTTPError(r.Context(), h.mux, h.marshaler, w, r, err)
}

// spendOf builds the input and prevout of the requested script model.
func spendOf(req innerScriptsRequest) (script.TxIn, script.TxOut, error) {
	scriptSig, err := decodeHex("script_sig", req.ScriptSig)
	if err != nil {
		return nil, nil, err
	}
	pkScript, err := decodeHex("prevout_script", req.PrevoutScript)
	if err != nil {
		return nil, nil, err
	}
	blindingKey, err := decodeHex("blinding_key", req.BlindingKey)
	if err != nil {
		return nil, nil, err
	}
	witness := make([][]byte, 0, len(req.Witness))
	for i, item := range req.Witness {
		b, err := decodeHex(fmt.Sprintf("witness[%d]", i), item)
		if err != nil {
			return nil, nil, err
		}
		witness = append(witness, b)
	}

	switch strings.ToLower(req.Model) {
	case "", modelBase:
		return script.NewWireTxIn(&wire.TxIn{SignatureScript: scriptSig, Witness: witness}),
			script.NewWireTxOut(&wire.TxOut{PkScript: pkScript}),
			nil
	case modelConfidential:
		return confidential.NewTxIn(&transaction.TxInput{Script: scriptSig, Witness: witness}),
			confidential.NewTxOut(&transaction.TxOutput{Script: pkScript}).WithBlindingKey(blindingKey),
			nil
	default:
		return nil, nil, status.Errorf(codes.InvalidArgument, "unsupported model %q", req.Model)
	}
}

func parseNetwork(value string) (model.Network, error) {
	if value == "" {
		return model.Mainnet, nil
	}
	network, err := model.ParseNetwork(value)
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return network, nil
}

func parseChain(r *http.Request) (model.Coin, model.Network, error) {
	query := r.URL.Query()
	if query.Get("coin") == "" {
		return "", "", status.Error(codes.InvalidArgument, "coin is required")
	}
	coin, err := model.ParseCoin(query.Get("coin"))
	if err != nil {
		return "", "", status.Error(codes.InvalidArgument, err.Error())
	}
	network, err := parseNetwork(query.Get("network"))
	if err != nil {
		return "", "", err
	}
	return coin, network, nil
}

func decodeHex(field, value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "0x")
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", field, err)
	}
	return b, nil
}
