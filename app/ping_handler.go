package app

import (
	"context"
	"time"
)

type PingHandler struct{}

func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

type PingRequest struct{}

type PingResponse struct {
	OK   bool  `json:"ok"`
	Time int64 `json:"time"`
}

func (h PingHandler) Handle(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{
		OK:   true,
		Time: time.Now().UTC().UnixMilli(),
	}, nil
}
