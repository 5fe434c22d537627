// Package services defines the [Lookup] interface for postal code resolution and implements it for ViaCEP.
//
// # Lookup Interface
//
// A [Lookup] turns a CEP into a [models.Location]. Unknown codes are not errors: the returned
// location reports [models.Location.NotFound] and the caller decides what to do with it.
//
// # ViaCEP Implementation
//
// [ViaCEPService] issues a single GET {base_url}/{cep}/json/ per lookup through [APIService].
// There are no retries and no caching. Timeouts are whatever the [http.Client] provides.
//
// [APIService] is the raw HTTP layer: it sets the User-Agent header and, when configured,
// waits on a [rate.Limiter] before each request so bursts of lookups stay polite.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure, non-2xx status or an undecodable body
//
// Transport failures and malformed responses are deliberately not distinguished by type;
// the wrapped message carries the detail for logs.
package services
