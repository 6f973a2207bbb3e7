package app

import (
	instructioncmd "github.com/goliatone/go-betriebsanweisung/command"
	"github.com/goliatone/go-betriebsanweisung/instruction"
	instructionqry "github.com/goliatone/go-betriebsanweisung/query"
	gcmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-errors"
)

// RegisterHandlers wires instruction commands and queries to go-command.
func RegisterHandlers(reg *gcmd.Registry, svc *instruction.Service, history instruction.History) ([]dispatcher.Subscription, error) {
	if svc == nil {
		return nil, errors.New("instruction service is required", errors.CategoryValidation).
			WithTextCode("SERVICE_REQUIRED")
	}

	render := instructioncmd.NewRenderInstructionHandler(svc)
	examples := instructioncmd.NewRenderExamplesHandler(svc)

	categories := instructionqry.NewListCategoriesHandler(svc.Catalog())
	example := instructionqry.NewGetExampleHandler(svc.Catalog())

	subscriptions := []dispatcher.Subscription{
		dispatcher.SubscribeCommand(render),
		dispatcher.SubscribeCommand(examples),
		dispatcher.SubscribeQuery(categories),
		dispatcher.SubscribeQuery(example),
	}
	if history != nil {
		subscriptions = append(subscriptions, dispatcher.SubscribeQuery(instructionqry.NewListHistoryHandler(history)))
	}

	if reg != nil {
		handlers := []any{render, examples, categories, example}
		for _, handler := range handlers {
			if err := reg.RegisterCommand(handler); err != nil {
				return subscriptions, err
			}
		}
	}

	return subscriptions, nil
}
