package app

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 15m", func() {
		a.SchedAppointmentReminderTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	// Collect CPU usage
	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100)) // Store as percentage * 100
	}

	// Collect memory usage
	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	// Collect process CPU usage
	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("glamease_cpuuse", int64(cpuuse*100)) // Store as percentage * 100
	}

	// Collect process memory usage
	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("glamease_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedClearExpireData prunes aged operation log entries.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.ConfigMgr().GetInt("oprlog", "retention_days")
	if idays == 0 {
		idays = 365
	}
	a.gormDB.
		Where("opt_time < ? ", time.Now().
			Add(-time.Hour*24*time.Duration(idays))).Delete(domain.SysOprLog{})
}

// SchedAppointmentReminderTask sends one reminder per confirmed booking
// whose appointment falls inside the reminder window.
func (a *Application) SchedAppointmentReminderTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	hours := a.ConfigMgr().GetInt64("booking", "reminder_hours")
	if hours <= 0 {
		hours = 24
	}

	now := time.Now()
	horizon := now.Add(time.Duration(hours) * time.Hour)

	var bookings []domain.Booking
	err := a.gormDB.
		Where("status = ?", domain.BookingConfirmed).
		Where("reminder_sent = ?", false).
		Where("appointment_at > ? and appointment_at <= ?", now, horizon).
		Find(&bookings).Error
	if err != nil {
		zap.L().Error("reminder scan failed", zap.Error(err))
		return
	}

	for i := range bookings {
		b := bookings[i]

		var customer domain.Customer
		if err := a.gormDB.First(&customer, b.CustomerId).Error; err != nil {
			zap.L().Warn("reminder skipped, customer missing",
				zap.Int64("booking_id", b.ID), zap.Error(err))
			continue
		}

		services := a.dataStore.ResolveServiceNames(b.ServiceIdList())
		if err := a.mailer.SendAppointmentReminder(b, customer.Name, customer.Email, services); err != nil {
			zap.L().Warn("reminder mail failed", zap.Int64("booking_id", b.ID), zap.Error(err))
		}
		if err := a.sms.SendAppointmentReminder(b, customer.Phone); err != nil {
			zap.L().Warn("reminder sms failed", zap.Int64("booking_id", b.ID), zap.Error(err))
		}

		if err := a.gormDB.Model(&domain.Booking{}).Where("id = ?", b.ID).
			Update("reminder_sent", true).Error; err != nil {
			zap.L().Error("failed to flag reminder sent", zap.Int64("booking_id", b.ID), zap.Error(err))
		}
	}

	if len(bookings) > 0 {
		metrics.IncrCounter("booking_reminders_sent", int64(len(bookings)))
	}
}
