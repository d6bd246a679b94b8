// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package page

import (
	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/target"
	"github.com/jongio/escapehatch/uaclass"
)

// planView is a Plan with millisecond delays, as the page script expects.
type planView struct {
	Platform           uaclass.Platform `json:"platform"`
	Steps              []escape.Step    `json:"steps"`
	StepDelayMs        int64            `json:"stepDelayMs"`
	TimeoutMs          int64            `json:"timeoutMs"`
	ManualOnExhaustion bool             `json:"manualOnExhaustion"`
}

func newPlanView(p escape.Plan) planView {
	steps := p.Steps
	if steps == nil {
		steps = []escape.Step{}
	}
	return planView{
		Platform:           p.Platform,
		Steps:              steps,
		StepDelayMs:        p.StepDelay.Milliseconds(),
		TimeoutMs:          p.Timeout.Milliseconds(),
		ManualOnExhaustion: p.ManualOnExhaustion,
	}
}

// clientConfig is serialised into the page for the escape script.
type clientConfig struct {
	planView
	LoadID      string `json:"loadId"`
	Target      string `json:"target"`
	EventsURL   string `json:"eventsUrl"`
	CopiedAckMs int64  `json:"copiedAckMs"`
	CopyLabel   string `json:"copyLabel"`
	CopiedLabel string `json:"copiedLabel"`
}

// pageData feeds templates/index.html.
type pageData struct {
	AppName string
	LoadID  string
	Target  target.Target
	Manual  escape.Manual
	Client  clientConfig
}

func (s *Server) newPageData(loadID string, env uaclass.Environment, tgt target.Target) pageData {
	plan := escape.BuildPlan(env, tgt, s.cfg.Timings, s.cfg.PlanOptions())
	manual := escape.Instructions(env)

	return pageData{
		AppName: s.cfg.Destination.AppName,
		LoadID:  loadID,
		Target:  tgt,
		Manual:  manual,
		Client: clientConfig{
			planView:    newPlanView(plan),
			LoadID:      loadID,
			Target:      tgt.URL,
			EventsURL:   "/api/events",
			CopiedAckMs: s.cfg.Timings.CopiedAck.Milliseconds(),
			CopyLabel:   manual.CopyLabel,
			CopiedLabel: manual.CopiedLabel,
		},
	}
}

// classifyResponse is returned by /api/classify.
type classifyResponse struct {
	Environment uaclass.Environment `json:"environment"`
	Decision    escape.Decision     `json:"decision"`
	Target      target.Target       `json:"target"`
	Plan        *planView           `json:"plan,omitempty"`
	Manual      *escape.Manual      `json:"manual,omitempty"`
}
