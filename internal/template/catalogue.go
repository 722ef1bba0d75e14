package template

// The message catalogue for the GUVNL queue management system. Placeholders
// use {snake_case} keys; the parameter set per event is part of the public
// contract with the booking and queue services.

func smsTemplates() map[Event]string {
	return map[Event]string{
		EventAppointmentBooked: "Hello {name}! Your appointment for {service} at {office} " +
			"is confirmed for {date} at {time}. Token: {token}. " +
			"Track status: {status_url}",
		EventAppointmentReminder: "Reminder: Your appointment for {service} at {office} " +
			"is scheduled in {minutes} minutes. Token: {token}. " +
			"Please arrive on time.",
		EventQueueUpdate: "Update: Your token {token} for {service} at {office}. " +
			"Current position: {position}. Estimated wait: {wait_time} minutes.",
		EventAppointmentReady: "It's your turn! Please report to counter for {service} " +
			"at {office}. Token: {token}.",
		EventAppointmentCompleted: "Thank you for visiting {office}. Your {service} request " +
			"has been processed. Reference: {token}.",
		EventAppointmentCancelled: "Your appointment for {service} at {office} on {date} " +
			"has been cancelled. Reschedule at: {booking_url}",
	}
}

func emailTemplates() map[Event]emailTemplate {
	return map[Event]emailTemplate{
		EventAppointmentBooked: {
			subject: "Appointment Confirmation - GUVNL Queue Management",
			html: `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #1976d2;">Appointment Confirmed!</h2>
		<p>Dear {name},</p>
		<p>Your appointment has been successfully booked. Here are the details:</p>
		<div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p><strong>Service:</strong> {service}</p>
			<p><strong>Office:</strong> {office}</p>
			<p><strong>Date:</strong> {date}</p>
			<p><strong>Time:</strong> {time}</p>
			<p><strong>Token Number:</strong> {token}</p>
		</div>
		<p>Please arrive 15 minutes before your scheduled time and bring all required documents.</p>
		<p style="margin-top: 30px;">
			<a href="{status_url}" style="background: #1976d2; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">
				Track Your Appointment
			</a>
		</p>
		<hr style="margin: 30px 0;">
		<p style="color: #666; font-size: 12px;">
			This is an automated message from GUVNL Queue Management System.
			Please do not reply to this email.
		</p>
	</div>
</body>
</html>`,
		},
		EventAppointmentReminder: {
			subject: "Appointment Reminder - GUVNL",
			html: `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #ff9800;">Appointment Reminder</h2>
		<p>Dear {name},</p>
		<p>This is a reminder that your appointment is scheduled in <strong>{minutes} minutes</strong>.</p>
		<div style="background: #fff3e0; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #ff9800;">
			<p><strong>Service:</strong> {service}</p>
			<p><strong>Office:</strong> {office}</p>
			<p><strong>Token:</strong> {token}</p>
		</div>
		<p>Please ensure you arrive on time with all required documents.</p>
	</div>
</body>
</html>`,
		},
	}
}
