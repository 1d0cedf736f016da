/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "croquet-swiss/0.3.0 (+https://github.com/mikeb26/croquet-swiss)"
	WebCacheBucket = "bopmatic-croquet-swiss-prod-webcache"
	ArchiveBucket  = "bopmatic-croquet-swiss-prod-archive"
	DefaultDBPath  = "tournament.db"
)
