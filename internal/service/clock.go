package service

import "time"

func systemNow() time.Time { return time.Now().UTC() }
