package service

import "github.com/prometheus/client_golang/prometheus"

var loginTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "auth_login_total", Help: "Login attempts by result"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(loginTotal) }
