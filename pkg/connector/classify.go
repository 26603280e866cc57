package connector

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/datalith-io/searchlink/pkg/errors"
	"github.com/datalith-io/searchlink/pkg/odbc"
)

// driverNotInstalledMarker is the substring the platform ODBC layer emits
// when no matching driver is registered. Matching on message text is fragile
// but it is the only signal the error record carries for this case.
const driverNotInstalledMarker = "doesn't correspond to an installed ODBC driver"

// nativeErrorHostUnreachable is the driver's reserved code for connection
// refused / host unreachable failures.
const nativeErrorHostUnreachable = 202

// driverInstallMessage is the fixed instructional text shown when the ODBC
// driver is missing from the host machine.
const driverInstallMessage = "the SearchLink ODBC driver is not installed on this machine; install the driver, then retry the connection"

// Classify inspects a raised driver error and maps it onto a user-facing
// category. Rules apply in order, first match wins:
//
//  1. The message names a missing ODBC driver: driver_not_installed with the
//     fixed install instructions, regardless of the native error code.
//  2. The native error code is the reserved connection-refused value:
//     host_unreachable, with the resolved data-source path in the message.
//  3. Anything else is returned unchanged, full original detail intact.
//
// Classify is pure: the same error record always yields the same result,
// and the original record is preserved as the cause of every rewritten
// error. A nil error classifies to nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var de *odbc.DriverError
	if !stderrors.As(err, &de) {
		// Not a driver error record; surface verbatim.
		return err
	}

	if strings.Contains(de.Message, driverNotInstalledMarker) {
		return errors.Wrap(err, errors.ErrorTypeDriverNotInstalled, driverInstallMessage)
	}

	if de.NativeError() == nativeErrorHostUnreachable {
		return errors.Wrap(err, errors.ErrorTypeHostUnreachable,
			fmt.Sprintf("could not reach the cluster at %s; check the server address and port", de.Detail.DataSourcePath)).
			WithDetail("data_source", de.Detail.DataSourcePath)
	}

	return err
}

// Category returns the metrics label for a classified error: the structured
// error type when present, "other" for verbatim passthrough errors.
func Category(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return string(e.Type)
	}
	return "other"
}
