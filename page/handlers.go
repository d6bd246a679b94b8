// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/probe"
	"github.com/jongio/escapehatch/target"
	"github.com/jongio/escapehatch/uaclass"
)

// resolveTarget builds the Target from the request query. A code that is too
// long is dropped and the base URL used instead.
func (s *Server) resolveTarget(r *http.Request) target.Target {
	tgt, err := s.targets.FromQuery(r.URL.Query())
	if err != nil {
		s.log.Warn("ignoring pass-through code", "error", err)
	}
	return tgt
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	env := uaclass.Classify(r.UserAgent())
	tgt := s.resolveTarget(r)
	decision := escape.Decide(env)
	recordPageLoad(env, decision)

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Vary", "User-Agent")

	if decision == escape.DecisionImmediate {
		s.log.Debug("redirecting", "platform", env.Platform, "browser", env.Browser, "url", tgt.URL)
		http.Redirect(w, r, tgt.URL, http.StatusFound)
		return
	}

	loadID := s.newID()
	log := s.log.WithLoad(loadID)
	log.Info("serving escape page", "platform", env.Platform, "browser", env.Browser, "host", env.Host)

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, s.newPageData(loadID, env, tgt)); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Referrer-Policy", "no-referrer")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	ua := r.URL.Query().Get("ua")
	if ua == "" {
		ua = r.UserAgent()
	}

	env := uaclass.Classify(ua)
	tgt := s.resolveTarget(r)
	resp := classifyResponse{
		Environment: env,
		Decision:    escape.Decide(env),
		Target:      tgt,
	}
	if resp.Decision == escape.DecisionEscape {
		plan := newPlanView(escape.BuildPlan(env, tgt, s.cfg.Timings, s.cfg.PlanOptions()))
		manual := escape.Instructions(env)
		resp.Plan = &plan
		resp.Manual = &manual
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type readyResponse struct {
	Status string        `json:"status"`
	Probe  *probe.Result `json:"probe,omitempty"`
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.prober == nil {
		writeJSON(w, http.StatusOK, readyResponse{Status: "ok"})
		return
	}

	result := s.prober.Status()
	if !s.prober.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, readyResponse{Status: "unavailable", Probe: &result})
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Status: "ok", Probe: &result})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(clientIP(r)) {
		recordEventRejected("rate_limited")
		writeError(w, http.StatusTooManyRequests, errRateLimited)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEventBytes)
	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		recordEventRejected("invalid")
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON"))
		return
	}
	if err := ev.Validate(); err != nil {
		recordEventRejected("invalid")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	recordEvent(ev)
	s.log.WithLoad(ev.LoadID).Debug("page event", "kind", ev.Kind(), "value", ev.Value(), "reason", ev.Reason)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
