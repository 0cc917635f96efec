package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/effects"
	"github.com/on-the-ground/effect_ive_profile/effects/log"
	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"github.com/on-the-ground/effect_ive_profile/effects/notification"
	"github.com/on-the-ground/effect_ive_profile/effects/store"
	"github.com/on-the-ground/effect_ive_profile/interpreter"
	"github.com/on-the-ground/effect_ive_profile/services"
)

// ErrUnknownInstruction is returned for instructions no handler knows.
var ErrUnknownInstruction = errors.New("unknown instruction")

// Interpret performs instructions directly against svc.
//
// Store and sender failures are handed back as services.Result values.
func Interpret(svc services.Services) interpreter.Handler[Instruction] {
	return func(ctx context.Context, instr Instruction) (any, error) {
		switch i := instr.(type) {
		case Info:
			svc.Logger.Info(i.Message)
			return nil, nil
		case Error:
			svc.Logger.Error(i.Message)
			return nil, nil
		case Query:
			return services.ResultFrom(svc.Store.Lookup(ctx, i.UserID)), nil
		case Update:
			return services.Unit(svc.Store.Persist(ctx, i.Profile)), nil
		case SendChangeNotification:
			return services.Unit(svc.Sender.Send(ctx, i.Message)), nil
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownInstruction, instr)
		}
	}
}

// InterpretEffects performs instructions through the log, store and
// notification effect handlers registered on the run's context.
//
// A missing handler, a closed handler or a cancelled context interrupts the
// run instead of being handed to the program.
func InterpretEffects() interpreter.Handler[Instruction] {
	return func(ctx context.Context, instr Instruction) (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				if rerr, ok := r.(error); ok && errors.Is(rerr, model.ErrNoEffectHandler) {
					out, err = nil, fmt.Errorf("%s: %w", instr.Tag(), rerr)
					return
				}
				panic(r)
			}
		}()

		switch i := instr.(type) {
		case Info:
			log.Effect(ctx, log.LogInfo, i.Message, nil)
			return nil, nil
		case Error:
			log.Effect(ctx, log.LogError, i.Message, nil)
			return nil, nil
		case Query:
			p, err := store.EffectLookup(ctx, i.UserID)
			if isFault(err) {
				return nil, err
			}
			return services.ResultFrom(p, err), nil
		case Update:
			err := store.EffectPersist(ctx, i.Profile)
			if isFault(err) {
				return nil, err
			}
			return services.Unit(err), nil
		case SendChangeNotification:
			err := notification.Effect(ctx, i.Message)
			if isFault(err) {
				return nil, err
			}
			return services.Unit(err), nil
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownInstruction, instr)
		}
	}
}

// isFault tells handler failures apart from collaborator failures.
func isFault(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, effects.ErrHandlerClosed)
}
