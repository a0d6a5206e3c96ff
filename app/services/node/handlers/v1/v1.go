// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ledgerd/node/app/services/node/handlers/v1/private"
	"github.com/ledgerd/node/app/services/node/handlers/v1/public"
	"github.com/ledgerd/node/foundation/blockchain/state"
	"github.com/ledgerd/node/foundation/blockchain/worker"
	"github.com/ledgerd/node/foundation/events"
	"github.com/ledgerd/node/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Worker *worker.Worker
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:    cfg.Log,
		State:  cfg.State,
		Worker: cfg.Worker,
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/blockchain", pbl.Blockchain)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/mine", pbl.Mine)
	app.Handle(http.MethodGet, version, "/consensus", pbl.Consensus)
	app.Handle(http.MethodPost, version, "/node/register", pbl.RegisterNode)
	app.Handle(http.MethodGet, version, "/block/:hash", pbl.BlockByHash)
	app.Handle(http.MethodGet, version, "/tx/:id", pbl.TransactionByID)
	app.Handle(http.MethodGet, version, "/address/:address", pbl.Address)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodGet, version, "/node/chain", prv.Chain)
	app.Handle(http.MethodPost, version, "/node/tx/submit", prv.SubmitTransaction)
	app.Handle(http.MethodPost, version, "/node/block/receive", prv.ReceiveBlock)
	app.Handle(http.MethodPost, version, "/node/peers/register", prv.RegisterPeer)
	app.Handle(http.MethodPost, version, "/node/peers/bulk", prv.RegisterPeers)
}
