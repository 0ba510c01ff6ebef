// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sessions keeps server-side form sessions.

Each session wraps one voteform.Controller. Controllers are not safe for
concurrent use, so handlers reach them through Session.Do, which holds the
session lock for the duration of the event:

	sess, err := store.Get(id)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		// 404
	}
	err = sess.Do(func(form *voteform.Controller) error {
		form.EmailChanged(raw, valid)
		return nil
	})

# Expiry

Every Do call touches the session. Store.Sweep drops sessions idle for
longer than the TTL.

# Scheduling

Scheduler runs two cron jobs (robfig/cron standard specs or descriptors
such as "@every 5m"):

  - the sweep, removing idle sessions
  - the results refresh, loading tallies and pushing them into every open
    form through SetResults

Refreshes do not count as activity.
*/
package sessions
