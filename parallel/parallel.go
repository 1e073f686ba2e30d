// Package parallel runs prime search across multiple goroutines, returning
// as soon as any worker finds a candidate and cancelling the rest.
package parallel

import (
	"context"
	"math/big"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/go-rsa/rsa/prime"
)

// GetPrime returns a prime that fits in nbits bits, searched across
// poolsize concurrent workers. Each worker runs prime.GetPrime in a loop,
// reading crypto/rand.Reader directly for its own draws, so no RNG state
// is shared between workers. The first prime delivered wins; GetPrime then
// cancels the remaining workers and waits for them to exit before
// returning, so no goroutine is ever leaked.
func GetPrime(ctx context.Context, nbits, poolsize int) (*big.Int, error) {
	if poolsize < 1 {
		poolsize = 1
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan *big.Int, poolsize)
	errs := make(chan error, poolsize)

	var wg sync.WaitGroup
	wg.Add(poolsize)
	for i := 0; i < poolsize; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				default:
				}

				p, err := prime.GetPrime(nbits)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}

				select {
				case found <- p:
					return
				case <-workerCtx.Done():
					return
				}
			}
		}()
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(allDone)
	}()

	var result *big.Int
	var resultErr error
	select {
	case result = <-found:
	case <-ctx.Done():
		resultErr = ctx.Err()
	case <-allDone:
		select {
		case result = <-found:
		default:
		}
	}

	cancel()
	wg.Wait()
	close(found)
	close(errs)

	if result != nil {
		return result, nil
	}

	if resultErr == nil {
		var merr *multierror.Error
		for err := range errs {
			merr = multierror.Append(merr, err)
		}
		resultErr = merr.ErrorOrNil()
		if resultErr == nil {
			resultErr = context.Canceled
		}
	}
	return nil, resultErr
}
