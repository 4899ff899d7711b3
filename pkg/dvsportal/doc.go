// Package dvsportal is a client for the DVSPortal visitor parking API.
//
// A Client is bound to one account on one portal host. It logs in lazily
// on the first call, caches the session token, and transparently
// re-authenticates exactly once when the portal stops honoring the token:
//
//	client, err := dvsportal.New("parking.example.nl", "123456", "hunter2")
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	if err := client.Update(ctx); err != nil {
//		return err
//	}
//	fmt.Println(client.Balance())
//
//	res, err := client.CreateReservation(ctx, dvsportal.CreateReservationRequest{
//		Plate: "111AB2",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.EndReservation(ctx, res.ReservationID)
//
// Failures are classified: IsAuthFailed, IsRequestRejected,
// IsServerOrTransport, IsMalformedResponse and IsValidationError pick the
// cases apart, and IsInvalidCredentials looks through an auth failure to
// tell a wrong password from an unreachable portal.
package dvsportal
