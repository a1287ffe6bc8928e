// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - internal queuing for ledger events
//
// mutations committed by the ledger are announced here and fan out to
// any subscribed broadcasters; delivery is best effort and a full
// subscriber queue drops messages rather than blocking the ledger
package messagebus
