//go:build gym

package main

// Registers the OpenAI Gym backend with envconfig
import _ "github.com/samuelfneumann/ddqn/environment/gym"
