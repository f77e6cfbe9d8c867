package app

import (
	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/modules/delay"
	"github.com/vk/flowgrid/modules/env_vars"
	"github.com/vk/flowgrid/modules/http_request"
	"github.com/vk/flowgrid/modules/print"
)

// coreModules are the built-in actions registered when the caller supplies
// none of its own.
var coreModules = []handlers.Module{
	&print.Module{},
	&env_vars.Module{},
	&delay.Module{},
	&http_request.Module{},
}
