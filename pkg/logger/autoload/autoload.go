// Package autoload initializes the global logger from the environment when
// imported for side effects.
package autoload

import (
	configx "github.com/qtickhq/agent-gateway/pkg/config"
	logx "github.com/qtickhq/agent-gateway/pkg/logger"
)

func init() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}
