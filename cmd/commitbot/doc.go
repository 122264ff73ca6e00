// Command commitbot keeps a repository's history active by committing
// generated placeholder files, either on demand or on a daily schedule.
//
// # Usage
//
//	commitbot --setup     # ask for the git identity and save it
//	commitbot --commit    # one commit now, then offer to push
//	commitbot --daemon    # commit at the configured times until Ctrl+C
//
// When several modes are given, setup wins over commit and commit over
// daemon. Without a mode the usage text is printed.
//
// # Options
//
//	-p, --path            repository path (env: COMMITBOT_PATH, default .)
//	-c, --config          configuration file (env: COMMITBOT_CONFIG, default config.json)
//	    --push            push after every commit without asking
//	    --non-interactive answer no to every prompt (env: COMMITBOT_NON_INTERACTIVE)
//	    --poll            scheduler poll interval (env: COMMITBOT_POLL, default 1m)
//	    --dbg             write a debug log (env: DEBUG)
//	    --log-file        debug log location (env: COMMITBOT_LOG_FILE)
//	    --no-color        plain console output (env: NO_COLOR)
//	-V, --version         print version and exit
//
// # Configuration
//
// The configuration file is JSON. A missing file is created with the
// defaults; keys missing from an existing file take their defaults:
//
//	{
//	    "commit_messages": ["📝 Update daily log", "..."],
//	    "file_types": ["daily_log.md", "progress.txt", "notes.md", "stats.json", "activity.log"],
//	    "schedule_times": ["09:00", "15:30", "21:00"],
//	    "weekend_activity": true,
//	    "commit_frequency": "daily",
//	    "github_username": "",
//	    "github_email": "",
//	    "auto_push": false
//	}
//
// commit_frequency is one of daily (one slot picked at start), twice_daily
// (two distinct slots) or random (each slot kept with a 60% chance). The
// scalar keys can be overridden with COMMITBOT_<KEY> environment variables,
// e.g. COMMITBOT_COMMIT_FREQUENCY=random.
//
// In daemon mode a lock file in the temp directory keeps a second commitbot
// from running against the same repository.
package main
