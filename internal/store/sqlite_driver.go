// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import _ "modernc.org/sqlite"

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"
